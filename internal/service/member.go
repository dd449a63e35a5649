package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Thimira-N/todo-cabin/internal/model"
	"github.com/Thimira-N/todo-cabin/internal/store"
)

var ErrMemberNameRequired = errors.New("member name is required")

type MemberService struct {
	store    store.Store
	registry *RegistryService
}

func NewMemberService(st store.Store, registry *RegistryService) *MemberService {
	return &MemberService{store: st, registry: registry}
}

func (s *MemberService) List(ctx context.Context, userID string) ([]model.Member, error) {
	docs, err := s.store.GetWhere(ctx, store.Members, map[string]string{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	members := make([]model.Member, 0, len(docs))
	for _, raw := range docs {
		var m model.Member
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if !members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		}
		return members[i].Name < members[j].Name
	})
	return members, nil
}

func (s *MemberService) Add(ctx context.Context, name, userID string) (*model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMemberNameRequired
	}
	m := model.Member{
		ID:        uuid.NewString(),
		Name:      name,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Set(ctx, store.Members, m.ID, m); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return &m, nil
}

func (s *MemberService) Get(ctx context.Context, memberID, userID string) (*model.Member, error) {
	raw, err := s.store.Get(ctx, store.Members, memberID)
	if err != nil {
		return nil, err
	}
	var m model.Member
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode member: %w", err)
	}
	if m.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &m, nil
}

// DeleteWithEntries removes a member and every registry entry that
// references it. The two steps are not atomic: a failure between them
// can leave the member behind with its entries already gone, which a
// retry cleans up.
func (s *MemberService) DeleteWithEntries(ctx context.Context, memberID, userID string) error {
	if _, err := s.Get(ctx, memberID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.registry.DeleteAllForMember(ctx, memberID, userID); err != nil {
		return fmt.Errorf("cascade registry entries: %w", err)
	}
	if err := s.store.Delete(ctx, store.Members, memberID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
