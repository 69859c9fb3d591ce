package orchestrators

import (
	"context"
	"errors"
	"testing"

	"membo/internal/domain/user"
)

func userDeps(users *mockUserStore) CreateUserDeps {
	return CreateUserDeps{UserStore: users, GenerateID: sequentialIDs("u"), Now: fixedNow}
}

func TestExecuteCreateUser_Defaults(t *testing.T) {
	users := newMockUserStore()

	created, err := ExecuteCreateUser(context.Background(), CreateUserInput{
		Name:  "Alex",
		Email: "Alex@Test.com",
	}, userDeps(users))
	if err != nil {
		t.Fatalf("ExecuteCreateUser failed: %v", err)
	}
	if created.Role != user.RoleMember {
		t.Errorf("role = %q, want member default", created.Role)
	}
	if created.BeltLevel != user.DefaultBelt {
		t.Errorf("belt = %q, want white default", created.BeltLevel)
	}
	if created.Status != user.StatusActive {
		t.Errorf("status = %q, want active default", created.Status)
	}
	if created.Email != "alex@test.com" {
		t.Errorf("email = %q, want normalized lower case", created.Email)
	}
}

func TestExecuteCreateUser_DuplicateEmail(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u0", Email: "taken@test.com"})

	_, err := ExecuteCreateUser(context.Background(), CreateUserInput{Name: "Alex", Email: "taken@test.com"}, userDeps(users))
	if !errors.Is(err, user.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}

func TestExecuteCreateUser_Validation(t *testing.T) {
	users := newMockUserStore()
	deps := userDeps(users)
	ctx := context.Background()

	cases := []CreateUserInput{
		{Name: "", Email: "a@test.com"},
		{Name: "Alex", Email: "not-an-email"},
		{Name: "Alex", Email: "a@test.com", Role: "superuser"},
	}
	for _, input := range cases {
		if _, err := ExecuteCreateUser(ctx, input, deps); err == nil {
			t.Errorf("expected validation error for %+v", input)
		}
	}
	if len(users.users) != 0 {
		t.Errorf("no users should have been saved, got %d", len(users.users))
	}
}

func TestExecuteUpdateUser(t *testing.T) {
	users := newMockUserStore(
		user.User{ID: "u1", Name: "Alex", Email: "alex@test.com", Role: user.RoleMember, BeltLevel: "white", Status: user.StatusActive},
		user.User{ID: "u2", Name: "Billie", Email: "billie@test.com", Role: user.RoleMember, BeltLevel: "white", Status: user.StatusActive},
	)
	deps := UpdateUserDeps{UserStore: users}
	ctx := context.Background()

	belt := "blue"
	updated, err := ExecuteUpdateUser(ctx, UpdateUserInput{ID: "u1", BeltLevel: &belt}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateUser failed: %v", err)
	}
	if updated.BeltLevel != "blue" {
		t.Errorf("belt = %q, want blue", updated.BeltLevel)
	}
	if updated.Name != "Alex" {
		t.Errorf("name = %q, omitted field should be unchanged", updated.Name)
	}

	takenEmail := "billie@test.com"
	if _, err := ExecuteUpdateUser(ctx, UpdateUserInput{ID: "u1", Email: &takenEmail}, deps); !errors.Is(err, user.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}

	sameEmail := "alex@test.com"
	if _, err := ExecuteUpdateUser(ctx, UpdateUserInput{ID: "u1", Email: &sameEmail}, deps); err != nil {
		t.Errorf("keeping own email should succeed, got %v", err)
	}

	if _, err := ExecuteUpdateUser(ctx, UpdateUserInput{ID: "ghost"}, deps); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteDeleteUser(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"})
	deps := DeleteUserDeps{UserStore: users}
	ctx := context.Background()

	if err := ExecuteDeleteUser(ctx, "u1", deps); err != nil {
		t.Fatalf("ExecuteDeleteUser failed: %v", err)
	}
	if err := ExecuteDeleteUser(ctx, "u1", deps); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteRegisterUser(t *testing.T) {
	users := newMockUserStore()
	deps := userDeps(users)
	ctx := context.Background()

	created, err := ExecuteRegisterUser(ctx, RegisterUserInput{
		Name:     "Alex",
		Email:    "alex@test.com",
		Password: "hunter22",
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteRegisterUser failed: %v", err)
	}
	if created.Role != user.RoleMember {
		t.Errorf("role = %q, signup must always create members", created.Role)
	}
	if !created.CheckPassword("hunter22") {
		t.Error("password was not stored")
	}

	if _, err := ExecuteRegisterUser(ctx, RegisterUserInput{Name: "X", Email: "x@test.com"}, deps); err == nil {
		t.Error("expected error for missing password")
	}
	if _, err := ExecuteRegisterUser(ctx, RegisterUserInput{Name: "Y", Email: "alex@test.com", Password: "pw"}, deps); !errors.Is(err, user.ErrEmailExists) {
		t.Errorf("err = %v, want ErrEmailExists", err)
	}
}
