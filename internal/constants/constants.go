package constants

// AppName returns the log prefix used across the application
func AppName() string {
	return "[rto-frontend]"
}

// ItemsPerPage is the fixed page size for the vehicle table
const ItemsPerPage = 10

// Query parameter names used when calling the backend list endpoint
const (
	PageQueryParam     = "page"
	PageSizeQueryParam = "page_size"
)

// ClientQueryParam selects the branding entry for the session
const ClientQueryParam = "client"

// Date formats. DisplayDateFormat matches the shape the original UI
// showed in the table; FormDateFormat is what date inputs submit.
const (
	DisplayDateFormat = "Mon Jan 2 2006"
	FormDateFormat    = "2006-01-02"
)
