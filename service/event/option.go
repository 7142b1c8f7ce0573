package event

import (
	"github.com/viant/parallel/service/messaging/fs"
	"github.com/viant/parallel/service/messaging/memory"
)

// Option customises the event service.
type Option func(s *Service)

// WithFsQueueConfig sets the per-queue filesystem configuration factory.
func WithFsQueueConfig(newConfig func(name string) fs.Config) Option {
	return func(s *Service) {
		s.fsQueueConfig = newConfig
	}
}

// WithMemoryQueueConfig sets the per-queue memory configuration factory.
func WithMemoryQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.memQueueConfig = newConfig
	}
}
