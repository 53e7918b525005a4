package bridge

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/afs"
)

// imageStore persists image payloads to the scratch directory and applies the re-encode policy
type imageStore struct {
	fs     afs.Service
	dir    string
	policy *ImagePolicy
}

type imagePayload struct {
	data       string //base64 of the returned bytes
	location   string
	reencoded  bool
	reencodeAt string
}

func canReencode(subtype string) bool {
	switch strings.ToLower(subtype) {
	case "jpeg", "png":
		return true
	}
	return false
}

// imageSubtype returns image subtype of a media type, empty if not an image
func imageSubtype(mediaType string) string {
	subtype, ok := strings.CutPrefix(mediaType, "image/")
	if !ok {
		return ""
	}
	if index := strings.IndexAny(subtype, "+;"); index != -1 {
		subtype = subtype[:index]
	}
	return strings.TrimSpace(subtype)
}

func (s *imageStore) write(ctx context.Context, location string, data []byte) error {
	return s.fs.Upload(ctx, location, os.FileMode(0644), bytes.NewReader(data))
}

// persist writes the original, its base64 form and, when the policy applies, the re-encoded variants
func (s *imageStore) persist(ctx context.Context, subtype string, data []byte) (*imagePayload, error) {
	name := uuid.New().String()
	ret := &imagePayload{location: path.Join(s.dir, name+"."+subtype)}
	ret.data = base64.StdEncoding.EncodeToString(data)
	if err := s.write(ctx, ret.location, data); err != nil {
		return nil, fmt.Errorf("failed to write %v: %w", ret.location, err)
	}
	if err := s.write(ctx, ret.location+".base64", []byte(ret.data)); err != nil {
		return nil, err
	}
	if !s.policy.Applies(subtype) {
		return ret, nil
	}
	smaller, err := reencode(subtype, data, s.policy.Quality)
	if err != nil {
		return ret, fmt.Errorf("failed to re-encode %v: %w", subtype, err)
	}
	ret.reencodeAt = ret.location + ".reencode." + subtype
	if err = s.write(ctx, ret.reencodeAt, smaller); err != nil {
		return ret, err
	}
	encoded := base64.StdEncoding.EncodeToString(smaller)
	if err = s.write(ctx, ret.reencodeAt+".base64", []byte(encoded)); err != nil {
		return ret, err
	}
	ret.data = encoded
	ret.reencoded = true
	return ret, nil
}

func reencode(subtype string, data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	buffer := new(bytes.Buffer)
	switch strings.ToLower(subtype) {
	case "jpeg":
		err = jpeg.Encode(buffer, img, &jpeg.Options{Quality: quality})
	case "png":
		encoder := &png.Encoder{CompressionLevel: png.BestCompression}
		err = encoder.Encode(buffer, img)
	default:
		err = fmt.Errorf("unsupported subtype: %v", subtype)
	}
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
