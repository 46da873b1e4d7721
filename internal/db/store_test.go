package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory database with migrated schema
func newTestStore(t *testing.T) Store {
	t.Helper()

	database, err := Open(OpenOptions{
		Path:        ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	return NewStore(database)
}

// seedUser creates a user for tests that need an owner
func seedUser(t *testing.T, s Store, username string) *User {
	t.Helper()

	user := &User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// seedProject creates a project with a root directory
func seedProject(t *testing.T, s Store, userID uint, name string) (*Project, *Directory) {
	t.Helper()

	ctx := context.Background()
	project := &Project{UserID: userID, Name: name}
	require.NoError(t, s.CreateProject(ctx, project))

	root := &Directory{ProjectID: project.ID, GitHash: "root-hash"}
	require.NoError(t, s.CreateDirectory(ctx, root))
	return project, root
}

// TestUserStore tests user and token operations
func TestUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGetUser", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")

		byID, err := s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		byName, err := s.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		s := newTestStore(t)
		seedUser(t, s, "alice")

		err := s.CreateUser(ctx, &User{
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "x",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("Tokens", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")

		err := s.CreateToken(ctx, &Token{Name: "ci", Value: "v", ExpiresAt: time.Now().Add(time.Hour)})
		assert.ErrorIs(t, err, ErrMissingUserID)

		require.NoError(t, s.CreateToken(ctx, &Token{
			UserID:    user.ID,
			Name:      "ci",
			Value:     "v",
			ExpiresAt: time.Now().Add(time.Hour),
		}))

		tokens, err := s.ListTokens(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, "ci", tokens[0].Name)
	})
}

// TestProjectStore tests project operations and per-user name uniqueness
func TestProjectStore(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, _ := seedProject(t, s, user.ID, "demo")

		got, err := s.GetProjectByName(ctx, user.ID, "demo")
		require.NoError(t, err)
		assert.Equal(t, project.ID, got.ID)
		assert.Nil(t, got.HookID)
		assert.Nil(t, got.LastSyncedAt)
	})

	t.Run("RequiresOwner", func(t *testing.T) {
		s := newTestStore(t)

		err := s.CreateProject(ctx, &Project{Name: "demo"})
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("NameUniquePerUser", func(t *testing.T) {
		s := newTestStore(t)
		alice := seedUser(t, s, "alice")
		bob := seedUser(t, s, "bob")
		seedProject(t, s, alice.ID, "demo")

		err := s.CreateProject(ctx, &Project{UserID: alice.ID, Name: "demo"})
		assert.ErrorIs(t, err, ErrDuplicateName)

		// Same name under another user is fine
		require.NoError(t, s.CreateProject(ctx, &Project{UserID: bob.ID, Name: "demo"}))
	})

	t.Run("UpdateClearsHook", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, _ := seedProject(t, s, user.ID, "demo")

		hookID := int64(42)
		now := time.Now().UTC()
		project.HookID = &hookID
		project.LastSyncedAt = &now
		require.NoError(t, s.UpdateProject(ctx, project))

		got, err := s.GetProject(ctx, project.ID)
		require.NoError(t, err)
		require.NotNil(t, got.HookID)
		assert.Equal(t, hookID, *got.HookID)
		require.NotNil(t, got.LastSyncedAt)

		// Reset: nil HookID must actually clear the column
		project.HookID = nil
		require.NoError(t, s.UpdateProject(ctx, project))

		got, err = s.GetProject(ctx, project.ID)
		require.NoError(t, err)
		assert.Nil(t, got.HookID)
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, root := seedProject(t, s, user.ID, "demo")

		file := &File{DirectoryID: root.ID, Name: "main.c", GitHash: "h1"}
		require.NoError(t, s.CreateFile(ctx, file))
		require.NoError(t, s.ReplaceRawMetrics(ctx, &RawMetrics{FileID: file.ID, LOC: 10}))

		require.NoError(t, s.DeleteProject(ctx, project.ID))

		_, err := s.GetProject(ctx, project.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = s.GetRootDirectory(ctx, project.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = s.GetFileByID(ctx, file.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = s.GetRawMetrics(ctx, file.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

// TestTreeStore tests directory and file invariants
func TestTreeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SingleRootPerProject", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, _ := seedProject(t, s, user.ID, "demo")

		err := s.CreateDirectory(ctx, &Directory{ProjectID: project.ID, GitHash: "other"})
		assert.ErrorIs(t, err, ErrRootExists)
	})

	t.Run("NamedDirectoryNeedsParent", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, _ := seedProject(t, s, user.ID, "demo")

		name := "src"
		err := s.CreateDirectory(ctx, &Directory{ProjectID: project.ID, Name: &name, GitHash: "h"})
		assert.ErrorIs(t, err, ErrMissingParentID)
	})

	t.Run("DirectoryNeedsProject", func(t *testing.T) {
		s := newTestStore(t)

		err := s.CreateDirectory(ctx, &Directory{GitHash: "h"})
		assert.ErrorIs(t, err, ErrMissingProjectID)
	})

	t.Run("LookupAndHashUpdate", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, root := seedProject(t, s, user.ID, "demo")

		name := "src"
		src := &Directory{ProjectID: project.ID, Name: &name, ParentID: &root.ID, GitHash: "h1"}
		require.NoError(t, s.CreateDirectory(ctx, src))

		got, err := s.GetDirectory(ctx, root.ID, "src")
		require.NoError(t, err)
		assert.Equal(t, src.ID, got.ID)

		require.NoError(t, s.UpdateDirectoryHash(ctx, src.ID, "h2"))
		got, err = s.GetDirectory(ctx, root.ID, "src")
		require.NoError(t, err)
		assert.Equal(t, "h2", got.GitHash)

		assert.ErrorIs(t, s.UpdateDirectoryHash(ctx, 9999, "h3"), ErrRecordNotFound)
	})

	t.Run("FileUniquePerDirectory", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		_, root := seedProject(t, s, user.ID, "demo")

		require.NoError(t, s.CreateFile(ctx, &File{DirectoryID: root.ID, Name: "main.c", GitHash: "h1"}))
		err := s.CreateFile(ctx, &File{DirectoryID: root.ID, Name: "main.c", GitHash: "h2"})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("RecursiveDelete", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		project, root := seedProject(t, s, user.ID, "demo")

		srcName := "src"
		src := &Directory{ProjectID: project.ID, Name: &srcName, ParentID: &root.ID, GitHash: "h1"}
		require.NoError(t, s.CreateDirectory(ctx, src))

		utilName := "util"
		util := &Directory{ProjectID: project.ID, Name: &utilName, ParentID: &src.ID, GitHash: "h2"}
		require.NoError(t, s.CreateDirectory(ctx, util))

		deep := &File{DirectoryID: util.ID, Name: "str.c", GitHash: "h3"}
		require.NoError(t, s.CreateFile(ctx, deep))
		require.NoError(t, s.ReplaceHalsteadMetrics(ctx, &HalsteadMetrics{FileID: deep.ID, TotalOperators: 5}))

		require.NoError(t, s.DeleteDirectory(ctx, src.ID))

		_, err := s.GetDirectory(ctx, root.ID, "src")
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = s.GetFileByID(ctx, deep.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		_, err = s.GetHalsteadMetrics(ctx, deep.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)

		// Root untouched
		_, err = s.GetRootDirectory(ctx, project.ID)
		require.NoError(t, err)
	})
}

// TestMetricsStore tests delete-then-insert replacement semantics
func TestMetricsStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ReplaceRaw", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		_, root := seedProject(t, s, user.ID, "demo")
		file := &File{DirectoryID: root.ID, Name: "main.c", GitHash: "h"}
		require.NoError(t, s.CreateFile(ctx, file))

		require.NoError(t, s.ReplaceRawMetrics(ctx, &RawMetrics{FileID: file.ID, LOC: 10, PLOC: 7}))
		require.NoError(t, s.ReplaceRawMetrics(ctx, &RawMetrics{FileID: file.ID, LOC: 12, PLOC: 9}))

		got, err := s.GetRawMetrics(ctx, file.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, got.LOC)
		assert.Equal(t, 9, got.PLOC)
	})

	t.Run("ReplaceGraphs", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		_, root := seedProject(t, s, user.ID, "demo")
		file := &File{DirectoryID: root.ID, Name: "main.c", GitHash: "h"}
		require.NoError(t, s.CreateFile(ctx, file))

		require.NoError(t, s.ReplaceGraphVisualizations(ctx, file.ID, []*GraphVisualization{
			{GraphType: GraphTypeCFG, FunctionName: "main", DOT: "digraph main {}"},
			{GraphType: GraphTypeCFG, FunctionName: "helper", DOT: "digraph helper {}"},
		}))

		// Re-analysis shrank the set
		require.NoError(t, s.ReplaceGraphVisualizations(ctx, file.ID, []*GraphVisualization{
			{GraphType: GraphTypeCFG, FunctionName: "main", DOT: "digraph main { a }"},
		}))

		graphs, err := s.ListGraphVisualizations(ctx, file.ID)
		require.NoError(t, err)
		require.Len(t, graphs, 1)
		assert.Equal(t, "main", graphs[0].FunctionName)
		assert.Equal(t, "digraph main { a }", graphs[0].DOT)
	})

	t.Run("DeleteSingleType", func(t *testing.T) {
		s := newTestStore(t)
		user := seedUser(t, s, "alice")
		_, root := seedProject(t, s, user.ID, "demo")
		file := &File{DirectoryID: root.ID, Name: "main.c", GitHash: "h"}
		require.NoError(t, s.CreateFile(ctx, file))

		require.NoError(t, s.ReplaceRawMetrics(ctx, &RawMetrics{FileID: file.ID, LOC: 10}))
		require.NoError(t, s.ReplaceHalsteadMetrics(ctx, &HalsteadMetrics{FileID: file.ID, TotalOperators: 4}))

		require.NoError(t, s.DeleteRawMetrics(ctx, file.ID))

		_, err := s.GetRawMetrics(ctx, file.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)

		// The other metric types are untouched
		halstead, err := s.GetHalsteadMetrics(ctx, file.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, halstead.TotalOperators)
	})

	t.Run("RequiresFileID", func(t *testing.T) {
		s := newTestStore(t)

		assert.ErrorIs(t, s.ReplaceRawMetrics(ctx, &RawMetrics{}), ErrMissingFileID)
		assert.ErrorIs(t, s.ReplaceHalsteadMetrics(ctx, &HalsteadMetrics{}), ErrMissingFileID)
		assert.ErrorIs(t, s.ReplaceGraphVisualizations(ctx, 0, nil), ErrMissingFileID)
	})
}

// TestWithTx tests transaction rollback
func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	user := seedUser(t, s, "alice")

	err := s.WithTx(ctx, func(tx Store) error {
		if err := tx.CreateProject(ctx, &Project{UserID: user.ID, Name: "demo"}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = s.GetProjectByName(ctx, user.ID, "demo")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
