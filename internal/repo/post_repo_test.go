package repo_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"user-posts-api/internal/domain"
	"user-posts-api/internal/repo"
	"user-posts-api/internal/repo/repotest"
)

func ptr(v int64) *int64 { return &v }

func sameAuthor(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestPostRepo_CreateWithoutAuthor(t *testing.T) {
	posts := repo.NewPostRepo(repotest.NewDB(t))
	ctx := context.Background()

	p, err := posts.Create(ctx, "Hi", nil)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	if p.ID != 1 || p.Title != "Hi" || p.UserID != nil {
		t.Errorf("Unexpected post %+v", p)
	}

	got, err := posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if got.ID != p.ID || got.Title != p.Title || !sameAuthor(got.UserID, p.UserID) {
		t.Errorf("Expected %+v, got %+v", p, got)
	}
}

func TestPostRepo_CreateWithMissingAuthor(t *testing.T) {
	posts := repo.NewPostRepo(repotest.NewDB(t))
	ctx := context.Background()

	_, err := posts.Create(ctx, "Hi", ptr(7))
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "user" || nf.ID != 7 {
		t.Fatalf("Expected user 7 not found, got %v", err)
	}
	all, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list posts: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Store should be untouched, got %+v", all)
	}
}

func TestPostRepo_UpdateOverwritesAuthor(t *testing.T) {
	db := repotest.NewDB(t)
	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	ctx := context.Background()

	u, err := users.Create(ctx, "Alice", "a@x.com")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	p, err := posts.Create(ctx, "Hi", &u.ID)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	// user_id 省略即清空：整体覆盖而非补丁
	updated, err := posts.Update(ctx, p.ID, "Hello", nil)
	if err != nil {
		t.Fatalf("Failed to update post: %v", err)
	}
	if updated.Title != "Hello" || updated.UserID != nil {
		t.Errorf("Unexpected update result %+v", updated)
	}
}

func TestPostRepo_UpdateMissing(t *testing.T) {
	posts := repo.NewPostRepo(repotest.NewDB(t))

	_, err := posts.Update(context.Background(), 3, "x", nil)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "post" {
		t.Fatalf("Expected post not found, got %v", err)
	}
}

func TestPostRepo_SetAuthorLinkAndUnlink(t *testing.T) {
	db := repotest.NewDB(t)
	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	ctx := context.Background()

	u, err := users.Create(ctx, "Alice", "a@x.com")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	p, err := posts.Create(ctx, "Hi", nil)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}

	if _, err := posts.SetAuthor(ctx, p.ID, &u.ID); err != nil {
		t.Fatalf("Failed to link author: %v", err)
	}
	got, err := posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if !sameAuthor(got.UserID, &u.ID) || got.Title != "Hi" {
		t.Errorf("Expected author %d and title kept, got %+v", u.ID, got)
	}

	if _, err := posts.SetAuthor(ctx, p.ID, nil); err != nil {
		t.Fatalf("Failed to unlink author: %v", err)
	}
	got, err = posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if got.UserID != nil {
		t.Errorf("Expected no author, got %d", *got.UserID)
	}
}

func TestPostRepo_SetAuthorErrors(t *testing.T) {
	db := repotest.NewDB(t)
	posts := repo.NewPostRepo(db)
	ctx := context.Background()

	if _, err := posts.SetAuthor(ctx, 1, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected post not found, got %v", err)
	}

	p, err := posts.Create(ctx, "Hi", nil)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	_, err = posts.SetAuthor(ctx, p.ID, ptr(1))
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "user" {
		t.Fatalf("Expected user not found, got %v", err)
	}
	got, err := posts.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to get post: %v", err)
	}
	if got.UserID != nil {
		t.Errorf("Failed link must not write, got user_id %d", *got.UserID)
	}
}

func TestPostRepo_ListByUserTracksMutations(t *testing.T) {
	db := repotest.NewDB(t)
	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	ctx := context.Background()

	a, _ := users.Create(ctx, "a", "a@x.com")
	b, _ := users.Create(ctx, "b", "b@x.com")

	p1, _ := posts.Create(ctx, "p1", &a.ID)
	p2, _ := posts.Create(ctx, "p2", &a.ID)
	p3, _ := posts.Create(ctx, "p3", nil)
	if _, err := posts.Update(ctx, p2.ID, "p2", &b.ID); err != nil {
		t.Fatalf("Failed to update post: %v", err)
	}
	if _, err := posts.SetAuthor(ctx, p3.ID, &a.ID); err != nil {
		t.Fatalf("Failed to link post: %v", err)
	}
	if _, err := posts.SetAuthor(ctx, p1.ID, nil); err != nil {
		t.Fatalf("Failed to unlink post: %v", err)
	}

	want := map[int64][]int64{a.ID: {p3.ID}, b.ID: {p2.ID}}
	for uid, ids := range want {
		got, err := posts.ListByUser(ctx, uid)
		if err != nil {
			t.Fatalf("Failed to list posts of %d: %v", uid, err)
		}
		var gotIDs []int64
		for _, p := range got {
			if p.UserID == nil || *p.UserID != uid {
				t.Errorf("Post %d listed under user %d has user_id %v", p.ID, uid, p.UserID)
			}
			gotIDs = append(gotIDs, p.ID)
		}
		sort.Slice(gotIDs, func(i, j int) bool { return gotIDs[i] < gotIDs[j] })
		if len(gotIDs) != len(ids) || (len(ids) > 0 && gotIDs[0] != ids[0]) {
			t.Errorf("User %d: expected posts %v, got %v", uid, ids, gotIDs)
		}
	}

	none, err := posts.ListByUser(ctx, 999)
	if err != nil {
		t.Fatalf("Failed to list posts: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no posts for unknown user, got %+v", none)
	}
}

func TestPostRepo_DeleteIsIdempotent(t *testing.T) {
	posts := repo.NewPostRepo(repotest.NewDB(t))
	ctx := context.Background()

	p, err := posts.Create(ctx, "Hi", nil)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := posts.Delete(ctx, p.ID); err != nil {
			t.Fatalf("Delete #%d failed: %v", i+1, err)
		}
	}
	if _, err := posts.Get(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}

func TestStoreErrorWrapsDriverFailure(t *testing.T) {
	db := repotest.NewDB(t)
	posts := repo.NewPostRepo(db)
	if err := db.Migrator().DropTable("posts"); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}

	_, err := posts.List(context.Background())
	var se *domain.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("Expected StoreError, got %v", err)
	}
	if se.Op != "list posts" {
		t.Errorf("Unexpected op %q", se.Op)
	}
}
