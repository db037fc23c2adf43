package domain

import (
	"math"
	"regexp"
	"strings"
)

// MaxImageKB is the largest inline image accepted, in estimated decoded KB.
const MaxImageKB = 500

// base64SizeFactor converts 4*ceil(len/3) into an estimated byte size. The
// constant is kept as-is so stored limits stay comparable with existing clients.
const base64SizeFactor = 0.5624896334383812

var dataURIPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,[A-Za-z0-9+/=]+$`)

// Base64SizeKB estimates the decoded size of an encoded image string.
func Base64SizeKB(encoded string) float64 {
	n := float64(len(encoded))
	return 4 * math.Ceil(n/3) * base64SizeFactor / 1024
}

// ValidateImageDataURI checks an inline image against the accepted format
// and size budget.
func ValidateImageDataURI(uri string) error {
	if !dataURIPattern.MatchString(uri) {
		return Invalid("Invalid image format. Must be a base64 png or jpeg data URI")
	}
	if Base64SizeKB(uri) > MaxImageKB {
		return Invalid("Image size exceeds 500KB limit")
	}
	return nil
}

var uploadContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

// ValidateImageUpload checks a multipart image against the allowed types and
// maxBytes. A non-positive maxBytes disables the size check.
func ValidateImageUpload(contentType string, size, maxBytes int64) error {
	if !uploadContentTypes[strings.ToLower(contentType)] {
		return Invalid("Only png and jpeg images are allowed")
	}
	if maxBytes > 0 && size > maxBytes {
		return Invalid("Uploaded image is too large")
	}
	return nil
}
