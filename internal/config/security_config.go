// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Health - Public
	"Health": SecurityPublic,

	// Listings - Public browse
	"SearchListings":  SecurityPublic,
	"GetListing":      SecurityPublic,
	"ListSpotReviews": SecurityPublic,
	"GetQuote":        SecurityPublic,
	"ListAmenities":   SecurityPublic,
	"ListEvents":      SecurityPublic,

	// Mock storage - Public, uploads are checked against the issued token
	"MockUpload":   SecurityPublic,
	"MockDownload": SecurityPublic,

	// Bookings - Access Protected
	"CreateBooking":  SecurityAccess,
	"ListMyBookings": SecurityAccess,
	"GetBooking":     SecurityAccess,
	"CancelBooking":  SecurityAccess,
	"CreateReview":   SecurityAccess,

	// Host - Access Protected
	"ListMyListings":     SecurityAccess,
	"CreateListing":      SecurityAccess,
	"UpdateListing":      SecurityAccess,
	"DeleteListing":      SecurityAccess,
	"ListAvailability":   SecurityAccess,
	"CreateAvailability": SecurityAccess,
	"UpdateAvailability": SecurityAccess,
	"DeleteAvailability": SecurityAccess,
	"RequestImageUpload": SecurityAccess,
	"ConfirmImageUpload": SecurityAccess,
	"DeleteImage":        SecurityAccess,
	"ListHostBookings":   SecurityAccess,
	"ConfirmBooking":     SecurityAccess,
	"GetEarnings":        SecurityAccess,
	"ListHostReviews":    SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
