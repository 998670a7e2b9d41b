// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/broepke/ortho-catalog/internal/container"
)

// DefaultImage is the poppler image the container backend runs when none
// is configured.
const DefaultImage = "pdftotext:latest"

// ContainerExtractor runs pdftotext inside a docker or podman container,
// for hosts without a native poppler install. The PDF is piped over
// stdin, so no volume mounts are needed.
type ContainerExtractor struct {
	runtime container.Runtime
	image   string
}

// NewContainerExtractor detects a container runtime and verifies the
// image exists locally before returning.
func NewContainerExtractor(image string) (*ContainerExtractor, error) {
	rt, err := container.DetectRuntime()
	if err != nil {
		return nil, err
	}
	if image == "" {
		image = DefaultImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, err
	}
	return &ContainerExtractor{runtime: rt, image: image}, nil
}

// ExtractText renders the first pages of the PDF to plain text inside
// the container.
func (c *ContainerExtractor) ExtractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	command := []string{"pdftotext", "-l", fmt.Sprint(FirstPages), "-q", "-", "-"}
	if err := c.runtime.Run(c.image, command, f, &out); err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("container pdftotext produced empty output for %s", path)
	}
	return text, nil
}
