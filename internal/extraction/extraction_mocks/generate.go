package extraction_mocks

//go:generate mockgen -destination=extraction_mocks.go -package=extraction_mocks receipt-scanner/internal/extraction Extractor
