package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	ApplicationHandler *ApplicationHandler
	OfferHandler       *OfferHandler
}
