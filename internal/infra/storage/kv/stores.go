// Package kv stores dashboard documents as JSON blobs.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

const (
	ConfigKey = "dashboard-config"
	RolesKey  = "user-roles"
)

type ConfigStorage struct {
	blobs repository.BlobStore
}

func NewConfigStorage(blobs repository.BlobStore) repository.ConfigRepository {
	return &ConfigStorage{blobs: blobs}
}

// Get returns usecase.ErrNotFound before the first Save.
func (s *ConfigStorage) Get(ctx context.Context) (entity.DashboardConfig, error) {
	var cfg entity.DashboardConfig
	if err := getJSON(ctx, s.blobs, ConfigKey, &cfg); err != nil {
		return entity.DashboardConfig{}, err
	}
	if cfg.Repositories == nil {
		cfg.Repositories = []entity.Repository{}
	}
	return cfg, nil
}

func (s *ConfigStorage) Save(ctx context.Context, cfg entity.DashboardConfig) error {
	return setJSON(ctx, s.blobs, ConfigKey, cfg)
}

type roleDocument struct {
	Users []entity.UserRoleEntry `json:"users"`
}

type RoleStorage struct {
	blobs repository.BlobStore
}

func NewRoleStorage(blobs repository.BlobStore) repository.RoleRepository {
	return &RoleStorage{blobs: blobs}
}

// List returns usecase.ErrNotFound while no role list was ever written.
func (s *RoleStorage) List(ctx context.Context) ([]entity.UserRoleEntry, error) {
	var doc roleDocument
	if err := getJSON(ctx, s.blobs, RolesKey, &doc); err != nil {
		return nil, err
	}
	if doc.Users == nil {
		doc.Users = []entity.UserRoleEntry{}
	}
	return doc.Users, nil
}

func (s *RoleStorage) ReplaceAll(ctx context.Context, entries []entity.UserRoleEntry) error {
	if entries == nil {
		entries = []entity.UserRoleEntry{}
	}
	return setJSON(ctx, s.blobs, RolesKey, roleDocument{Users: entries})
}

func getJSON(ctx context.Context, blobs repository.BlobStore, key string, dst any) error {
	raw, err := blobs.Get(ctx, key)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return usecase.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, blobs repository.BlobStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := blobs.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
