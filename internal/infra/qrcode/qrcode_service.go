package qrcode

import (
	"net/url"
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeServiceFromConfig reads the qrcode config section.
func NewQRCodeServiceFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M", "")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateProductQR generates a PNG QR code pointing at the product page
func (s *qrcodeService) GenerateProductQR(origin, productPath string) ([]byte, error) {
	target, err := s.productURL(origin, productPath)
	if err != nil {
		return nil, err
	}

	qrCode, err := qrcode.New(target, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

func (s *qrcodeService) productURL(origin, productPath string) (string, error) {
	base := s.baseURL
	if base == "" {
		base = strings.TrimRight(origin, "/")
	}

	u, err := url.Parse(base + "/" + strings.TrimLeft(productPath, "/"))
	if err != nil {
		return "", errors.Wrap(err, "invalid product URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Errorf("product URL %q is not absolute", u.String())
	}

	return u.String(), nil
}
