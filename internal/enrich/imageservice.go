package enrich

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// ImageService talks to a Stable Diffusion webui backend: a cheap
// reachability probe before a batch advertises the endpoint in the
// written config, and optional scene rendering per room.
type ImageService struct {
	host      string
	port      int
	client    *http.Client
	genClient *http.Client
}

// NewImageService returns a client for the backend at host:port. Host
// and port stay separate here for the same reason they stay separate in
// the artifact.
func NewImageService(host string, port int) *ImageService {
	return &ImageService{
		host: host,
		port: port,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		// Generation is slow; only the probe gets the short timeout.
		genClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// Ping reports whether the backend answers its models endpoint.
func (s *ImageService) Ping(ctx context.Context) error {
	url := fmt.Sprintf("http://%s/sdapi/v1/sd-models",
		net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("enrich: image service request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("enrich: image service unreachable at %s:%d: %w", s.host, s.port, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("enrich: image service at %s:%d returned %s", s.host, s.port, resp.Status)
	}
	return nil
}

type txt2imgRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Steps          int    `json:"steps"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

// GenerateScene renders one image for the given prompt using the
// world's image parameters. Network failures surface as ErrUnavailable
// so callers can skip rendering without failing the run.
func (s *ImageService) GenerateScene(ctx context.Context, prompt string, cfg world.ImageGenConfig) ([]byte, error) {
	payload, err := json.Marshal(txt2imgRequest{
		Prompt:         prompt,
		NegativePrompt: cfg.NegativePrompt,
		Steps:          cfg.Steps,
		Width:          cfg.Width,
		Height:         cfg.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("enrich: txt2img payload: %w", err)
	}

	url := fmt.Sprintf("http://%s/sdapi/v1/txt2img",
		net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("enrich: txt2img request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.genClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: txt2img returned %s", ErrUnavailable, resp.Status)
	}

	var decoded txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("enrich: txt2img response: %w", err)
	}
	if len(decoded.Images) == 0 {
		return nil, fmt.Errorf("enrich: txt2img returned no images")
	}
	img, err := base64.StdEncoding.DecodeString(decoded.Images[0])
	if err != nil {
		return nil, fmt.Errorf("enrich: txt2img image decoding: %w", err)
	}
	return img, nil
}

// RenderScenes generates one image per room into dir/images, named by
// room id. The first unavailable response stops rendering; rooms
// already rendered stay on disk. Returns the number of images written.
func RenderScenes(ctx context.Context, svc *ImageService, w *world.World, dir string, logger *zap.Logger) (int, error) {
	imageDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return 0, fmt.Errorf("enrich: creating image directory: %w", err)
	}

	written := 0
	for _, rid := range w.SortedRoomIDs() {
		room := w.Rooms[rid]
		prompt := room.Name + ", " + w.ImageGen.SceneSuffix
		img, err := svc.GenerateScene(ctx, prompt, w.ImageGen)
		if errors.Is(err, ErrUnavailable) {
			logger.Warn("image backend unavailable, stopping scene rendering",
				zap.String("room", rid), zap.Int("rendered", written))
			return written, nil
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(imageDir, rid+".jpg")
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return written, fmt.Errorf("enrich: writing %s: %w", path, err)
		}
		written++
	}
	return written, nil
}
