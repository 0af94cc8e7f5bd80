package sqlite

import (
	"fmt"

	"github.com/gushi-cookie/chan-parser/shared/domain"
)

// Query module for the posts table.

// CreatePostsTable creates the posts table if it does not exist. Removing a
// thread removes its posts (and, transitively, their files).
func (s *Storage) CreatePostsTable() error {
	return s.execute(`
	CREATE TABLE IF NOT EXISTS posts (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		thread_id        INTEGER NOT NULL,
		number           INTEGER NOT NULL,
		list_index       INTEGER NOT NULL,
		create_timestamp INTEGER NOT NULL,
		name             TEXT NOT NULL,
		comment          TEXT NOT NULL,
		is_banned        INTEGER NOT NULL,
		is_deleted       INTEGER NOT NULL,
		is_op            INTEGER NOT NULL,
		FOREIGN KEY (thread_id)
			REFERENCES threads (id)
			ON DELETE CASCADE
			ON UPDATE NO ACTION
	);`)
}

func storedPostFromRow(r row) *domain.StoredPost {
	return &domain.StoredPost{
		Id:              r.int64At("id"),
		ThreadId:        r.int64At("thread_id"),
		Number:          r.int64At("number"),
		ListIndex:       r.intAt("list_index"),
		CreateTimestamp: r.int64At("create_timestamp"),
		Name:            r.stringAt("name"),
		Comment:         r.stringAt("comment"),
		IsBanned:        r.boolAt("is_banned"),
		IsDeleted:       r.boolAt("is_deleted"),
		IsOp:            r.boolAt("is_op"),
	}
}

func storedPostsFromRows(rows []row) []*domain.StoredPost {
	posts := make([]*domain.StoredPost, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, storedPostFromRow(r))
	}
	return posts
}

// PostById returns the post with the given id, or nil when no row matches.
func (s *Storage) PostById(id domain.PostId, excludedColumns []string) (*domain.StoredPost, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE id = ?", postsTable.projection(excludedColumns))
	r, err := s.fetchOne(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post by id: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedPostFromRow(r), nil
}

// FirstPostOfThread returns the thread's post with list_index 0 — its OP —
// or nil when the thread has no posts. Primary-key order breaks ties.
func (s *Storage) FirstPostOfThread(threadId domain.ThreadId, excludedColumns []string) (*domain.StoredPost, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM posts WHERE thread_id = ? AND list_index = 0 ORDER BY id LIMIT 1",
		postsTable.projection(excludedColumns),
	)
	r, err := s.fetchOne(query, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first post of thread: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedPostFromRow(r), nil
}

// PostsOfThread returns all posts of a thread, unsorted.
func (s *Storage) PostsOfThread(threadId domain.ThreadId, excludedColumns []string) ([]*domain.StoredPost, error) {
	query := fmt.Sprintf("SELECT %s FROM posts WHERE thread_id = ?", postsTable.projection(excludedColumns))
	rows, err := s.fetchAll(query, threadId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts of thread: %w", err)
	}
	return storedPostsFromRows(rows), nil
}

// PostsOfThreads returns the posts of all the given threads in one batched
// lookup. An empty id set short-circuits without touching the database.
func (s *Storage) PostsOfThreads(threadIds []domain.ThreadId, excludedColumns []string) ([]*domain.StoredPost, error) {
	if len(threadIds) == 0 {
		return []*domain.StoredPost{}, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM posts WHERE thread_id IN (%s)",
		postsTable.projection(excludedColumns), placeholders(len(threadIds)),
	)
	args := make([]any, len(threadIds))
	for i, id := range threadIds {
		args[i] = id
	}

	rows, err := s.fetchAll(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts of threads: %w", err)
	}
	return storedPostsFromRows(rows), nil
}

const insertPostSQL = `
	INSERT INTO posts(id, thread_id, number, list_index, create_timestamp, name, comment, is_banned, is_deleted, is_op)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertPostArgs(post *domain.StoredPost) []any {
	return []any{
		idArg(post.Id), post.ThreadId, post.Number, post.ListIndex, post.CreateTimestamp,
		post.Name, post.Comment, boolArg(post.IsBanned), boolArg(post.IsDeleted), boolArg(post.IsOp),
	}
}

// InsertPost inserts the post and returns the generated id.
func (s *Storage) InsertPost(post *domain.StoredPost) (domain.PostId, error) {
	_, id, err := s.run(insertPostSQL, insertPostArgs(post)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

// InsertPostWithFiles inserts a post and all of its files in one transaction.
// A failure on any statement rolls the whole write back.
func (s *Storage) InsertPostWithFiles(post *domain.StoredPost, files []*domain.StoredFile) (domain.PostId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(insertPostSQL, insertPostArgs(post)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	postId, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, file := range files {
		file.PostId = postId
		if _, err := tx.Exec(insertFileSQL, insertFileArgs(file)...); err != nil {
			return 0, fmt.Errorf("failed to insert file of post: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return postId, nil
}

// UpdatePost persists exactly the named fields of the record. Unknown field
// names fail with UnknownFieldError before any query runs.
func (s *Storage) UpdatePost(post *domain.StoredPost, fields []string) error {
	sets, err := postsTable.setClause(fields)
	if err != nil {
		return err
	}

	args := make([]any, 0, len(fields)+1)
	for _, field := range fields {
		args = append(args, postFieldValue(post, field))
	}
	args = append(args, post.Id)

	query := fmt.Sprintf("UPDATE posts SET %s WHERE id = ?", sets)
	if _, _, err := s.run(query, args...); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func postFieldValue(post *domain.StoredPost, field string) any {
	switch field {
	case "id":
		return post.Id
	case "threadId":
		return post.ThreadId
	case "number":
		return post.Number
	case "listIndex":
		return post.ListIndex
	case "createTimestamp":
		return post.CreateTimestamp
	case "name":
		return post.Name
	case "comment":
		return post.Comment
	case "isBanned":
		return boolArg(post.IsBanned)
	case "isDeleted":
		return boolArg(post.IsDeleted)
	case "isOp":
		return boolArg(post.IsOp)
	default:
		return nil
	}
}
