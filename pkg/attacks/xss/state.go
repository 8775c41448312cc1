package xss

// incrementTestCount increments the executed test counter
func (s *Scanner) incrementTestCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testsExecuted++
}

// recordSuccessfulRequest increments the successful request counter
func (s *Scanner) recordSuccessfulRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successfulRequests++
}

// recordFailedRequest increments the failed request counter
func (s *Scanner) recordFailedRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failedRequests++
}

// recordFinding appends a confirmed finding in scan order
func (s *Scanner) recordFinding(finding Finding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findings = append(s.findings, finding)
}
