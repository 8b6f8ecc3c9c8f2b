package services

import (
	"context"
	"testing"

	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/utils/apperr"
)

func seedUser(t *testing.T, svc *Services) *model.User {
	t.Helper()
	u, err := svc.Users.Register(context.Background(), RegisterRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "Asha@Example.com",
		Username:  "asha",
		Password:  "password1",
		Role:      "student",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestGetProfile(t *testing.T) {
	svc, _, _ := newTestServices(t)
	u := seedUser(t, svc)

	p, err := svc.Users.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Role != "Student" || p.Email != "asha@example.com" || p.FirstName != "Asha" {
		t.Fatalf("unexpected profile %+v", p)
	}

	_, err = svc.Users.Get(context.Background(), 999)
	assertKind(t, err, apperr.KindNotFound)
}

func TestUpdateProfileNullPatchIsNoop(t *testing.T) {
	svc, db, _ := newTestServices(t)
	ctx := context.Background()
	u := seedUser(t, svc)

	patch := model.ProfilePatch{
		FirstName: model.Optional[string]{Set: true, Null: true},
		Bio:       model.Optional[string]{Set: true, Null: true},
	}
	if _, err := svc.Users.Update(ctx, u.ID, model.RoleStudent, u.ID, patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	var got model.User
	db.First(&got, u.ID)
	if got.FirstName != "Asha" || got.LastName != "Rao" || got.Bio != "" {
		t.Fatalf("null patch must not change fields, got %+v", got)
	}
}

func TestUpdateProfileIsIdempotent(t *testing.T) {
	svc, db, _ := newTestServices(t)
	ctx := context.Background()
	u := seedUser(t, svc)

	patch := model.ProfilePatch{
		Bio:              model.Some("Gopher"),
		HighestEducation: model.Some("MSc"),
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Users.Update(ctx, u.ID, model.RoleStudent, u.ID, patch); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	var got model.User
	db.First(&got, u.ID)
	if got.Bio != "Gopher" || got.HighestEducation != "MSc" || got.FirstName != "Asha" {
		t.Fatalf("unexpected user after patch %+v", got)
	}
	if got.Role != model.RoleStudent {
		t.Fatalf("role must never change, got %s", got.Role)
	}
}

func TestUpdateProfileAuthorization(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	u := seedUser(t, svc)
	patch := model.ProfilePatch{Bio: model.Some("x")}

	_, err := svc.Users.Update(ctx, u.ID+1, model.RoleMentor, u.ID, patch)
	assertKind(t, err, apperr.KindForbidden)

	if _, err := svc.Users.Update(ctx, 4242, model.RoleAdmin, u.ID, patch); err != nil {
		t.Fatalf("admin update: %v", err)
	}

	_, err = svc.Users.Update(ctx, 1, model.RoleAdmin, 999, patch)
	assertKind(t, err, apperr.KindNotFound)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	u := seedUser(t, svc)

	_, err := svc.Users.Register(ctx, RegisterRequest{
		FirstName: "Root", Email: "root@example.com", Username: "root", Password: "password1", Role: "Admin",
	})
	assertKind(t, err, apperr.KindBadRequest)

	_, err = svc.Users.Register(ctx, RegisterRequest{
		FirstName: "Dup", Email: "asha@example.com", Username: "other", Password: "password1", Role: "Mentor",
	})
	assertKind(t, err, apperr.KindConflict)

	_, err = svc.Users.Register(ctx, RegisterRequest{
		FirstName: "Dup", Email: "other@example.com", Username: "asha", Password: "password1", Role: "Mentor",
	})
	assertKind(t, err, apperr.KindConflict)

	byEmail, err := svc.Users.Authenticate(ctx, "ASHA@example.com", "password1")
	if err != nil || byEmail.ID != u.ID {
		t.Fatalf("login by email: %v %v", byEmail, err)
	}
	byUsername, err := svc.Users.Authenticate(ctx, "asha", "password1")
	if err != nil || byUsername.ID != u.ID {
		t.Fatalf("login by username: %v %v", byUsername, err)
	}

	_, err = svc.Users.Authenticate(ctx, "asha", "wrong-password")
	assertKind(t, err, apperr.KindUnauthorized)
	_, err = svc.Users.Authenticate(ctx, "nobody", "password1")
	assertKind(t, err, apperr.KindUnauthorized)
}
