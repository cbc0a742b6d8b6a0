package service

// QRCodeService renders share codes for product pages
type QRCodeService interface {
	// GenerateProductQR encodes the absolute URL of a product page as a PNG.
	// origin ("https://host") is used when no public base URL is configured.
	GenerateProductQR(origin, productPath string) ([]byte, error)
}
