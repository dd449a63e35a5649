package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Thimira-N/todo-cabin/internal/store"
)

func newMemberFixture() (*MemberService, *RegistryService) {
	st := store.NewMemoryStore()
	reg := NewRegistryService(st)
	return NewMemberService(st, reg), reg
}

func TestMemberService_AddAndList(t *testing.T) {
	members, _ := newMemberFixture()
	ctx := context.Background()

	m, err := members.Add(ctx, "Asha", "u1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.ID == "" || m.Name != "Asha" || m.UserID != "u1" {
		t.Errorf("member = %+v", m)
	}

	members.Add(ctx, "Ben", "u2")

	got, err := members.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Asha" {
		t.Errorf("list = %+v, want only u1's member", got)
	}
}

func TestMemberService_AddRequiresName(t *testing.T) {
	members, _ := newMemberFixture()
	if _, err := members.Add(context.Background(), "   ", "u1"); !errors.Is(err, ErrMemberNameRequired) {
		t.Errorf("err = %v, want ErrMemberNameRequired", err)
	}
}

func TestMemberService_DeleteCascadesRegistryEntries(t *testing.T) {
	members, reg := newMemberFixture()
	ctx := context.Background()

	m, err := members.Add(ctx, "Asha", "u1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	reg.MarkIn(ctx, "2024-01-01", m.ID, "u1", "Asha", "09:00")
	reg.MarkOut(ctx, "2024-01-02", m.ID, "u1", "Asha", "17:00")

	if err := members.DeleteWithEntries(ctx, m.ID, "u1"); err != nil {
		t.Fatalf("deleteWithEntries: %v", err)
	}

	left, err := members.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("members left = %+v, want none", left)
	}

	entries, err := reg.All(ctx, "u1")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("orphaned registry entries remain: %+v", entries)
	}
}

func TestMemberService_DeleteMissingIsNoop(t *testing.T) {
	members, _ := newMemberFixture()
	if err := members.DeleteWithEntries(context.Background(), "missing", "u1"); err != nil {
		t.Errorf("delete missing member: %v, want nil", err)
	}
}

func TestMemberService_DeleteOtherTeamsMember(t *testing.T) {
	members, reg := newMemberFixture()
	ctx := context.Background()

	m, _ := members.Add(ctx, "Asha", "u1")
	reg.MarkIn(ctx, "2024-01-01", m.ID, "u1", "Asha", "09:00")

	// u2 cannot reach into u1's data.
	if err := members.DeleteWithEntries(ctx, m.ID, "u2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	left, _ := members.List(ctx, "u1")
	if len(left) != 1 {
		t.Errorf("u1's member was deleted by u2")
	}
}
