package gateway

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lithammer/shortuuid/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileStore keeps the gateway registry in a single yaml document, loaded
// once on open and flushed on every mutation. All mutations take the store
// lock so concurrent registrations cannot interleave their read-modify-write
// sequences.
type FileStore struct {
	path string

	mu       sync.Mutex
	gateways []*Gateway
}

type registryDoc struct {
	Gateways []*Gateway `yaml:"gateways"`
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read gateway registry %s", s.path)
	}
	doc := registryDoc{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, "failed to parse gateway registry %s", s.path)
	}
	s.gateways = doc.Gateways
	return nil
}

func (s *FileStore) flush() error {
	data, err := yaml.Marshal(registryDoc{Gateways: s.gateways})
	if err != nil {
		return errors.Wrap(err, "failed to encode gateway registry")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create registry directory for %s", s.path)
	}
	tmp := fmt.Sprintf("%s.%s.tmp", s.path, shortuuid.New())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write gateway registry %s", s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to replace gateway registry %s", s.path)
	}
	return nil
}

func (s *FileStore) indexOf(name string) int {
	for i, gw := range s.gateways {
		if gw.Name == name {
			return i
		}
	}
	return -1
}

func (s *FileStore) Add(gw *Gateway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(gw.Name) >= 0 {
		return errors.Wrapf(ErrGatewayExists, "gateway %s", gw.Name)
	}
	stored := *gw
	s.gateways = append(s.gateways, &stored)
	if err := s.flush(); err != nil {
		s.gateways = s.gateways[:len(s.gateways)-1]
		return err
	}
	return nil
}

func (s *FileStore) Update(gw *Gateway) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(gw.Name)
	if idx < 0 {
		return errors.Wrapf(ErrGatewayNotFound, "gateway %s", gw.Name)
	}
	previous := s.gateways[idx]
	stored := *gw
	s.gateways[idx] = &stored
	if err := s.flush(); err != nil {
		s.gateways[idx] = previous
		return err
	}
	return nil
}

func (s *FileStore) Get(name string) (*Gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(name)
	if idx < 0 {
		return nil, errors.Wrapf(ErrGatewayNotFound, "gateway %s", name)
	}
	gw := *s.gateways[idx]
	return &gw, nil
}

// List returns the registered gateways in insertion order.
func (s *FileStore) List() ([]*Gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gateways := make([]*Gateway, 0, len(s.gateways))
	for _, gw := range s.gateways {
		stored := *gw
		gateways = append(gateways, &stored)
	}
	return gateways, nil
}
