package health

// Service encapsulates health-related checks.
type Service struct{}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns the liveness payload. It does not verify downstream
// dependencies; the process being up is the only thing it reports.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "healthy"}
}
