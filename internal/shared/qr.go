package shared

import (
	"strings"

	"github.com/Conversly/community-api/internal/types"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// QRImageSize is the edge length of generated QR PNGs in pixels.
const QRImageSize = 512

var tokenPrefixes = map[types.PersonType]string{
	types.PersonResident: "res_",
	types.PersonEmployee: "emp_",
	types.PersonProvider: "svc_",
	types.PersonGuest:    "gst_",
}

// NewGateToken returns a random gate token whose prefix names the person type.
func NewGateToken(personType types.PersonType) string {
	return tokenPrefixes[personType] + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ParseGateToken reports which person type a token belongs to.
func ParseGateToken(token string) (types.PersonType, bool) {
	token = strings.TrimSpace(token)
	for personType, prefix := range tokenPrefixes {
		if strings.HasPrefix(token, prefix) && len(token) > len(prefix) {
			return personType, true
		}
	}
	return "", false
}

// QRCodePNG renders content as a PNG QR code.
func QRCodePNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRImageSize)
}
