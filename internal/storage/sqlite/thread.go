package sqlite

import (
	"fmt"
	"strings"

	"github.com/gushi-cookie/chan-parser/shared/domain"
)

// Query module for the threads table.

// CreateThreadsTable creates the threads table if it does not exist.
func (s *Storage) CreateThreadsTable() error {
	return s.execute(`
	CREATE TABLE IF NOT EXISTS threads (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		image_board      TEXT NOT NULL,
		board            TEXT NOT NULL,
		number           INTEGER NOT NULL,
		title            TEXT NOT NULL,
		posters_count    INTEGER NOT NULL,
		create_timestamp INTEGER NOT NULL,
		views_count      INTEGER NOT NULL,
		last_activity    INTEGER NOT NULL,
		is_deleted       INTEGER NOT NULL
	);`)
}

func storedThreadFromRow(r row) *domain.StoredThread {
	return &domain.StoredThread{
		Id:              r.int64At("id"),
		ImageBoard:      r.stringAt("image_board"),
		Board:           r.stringAt("board"),
		Number:          r.int64At("number"),
		Title:           r.stringAt("title"),
		PostersCount:    r.intAt("posters_count"),
		CreateTimestamp: r.int64At("create_timestamp"),
		ViewsCount:      r.intAt("views_count"),
		LastActivity:    r.int64At("last_activity"),
		IsDeleted:       r.boolAt("is_deleted"),
		PostsCount:      r.intAt("posts_count"),
		FilesCount:      r.intAt("files_count"),
	}
}

// threadCountsSelect computes posts_count/files_count per thread row. Every
// read path serving the catalog shape selects these, so single lookups and
// listings report the same counts.
const threadCountsSelect = `
		(SELECT COUNT(*) FROM posts WHERE posts.thread_id = threads.id) AS posts_count,
		(SELECT COUNT(*) FROM files JOIN posts ON files.post_id = posts.id WHERE posts.thread_id = threads.id) AS files_count`

// ThreadById returns the thread with the given id, or nil when no row matches.
func (s *Storage) ThreadById(id domain.ThreadId, excludedColumns []string) (*domain.StoredThread, error) {
	query := fmt.Sprintf(
		"SELECT %s,%s\n\tFROM threads WHERE id = ?",
		threadsTable.projection(excludedColumns), threadCountsSelect,
	)
	r, err := s.fetchOne(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread by id: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedThreadFromRow(r), nil
}

// ThreadByNumber returns the thread with the given display number on a
// specific board, or nil.
func (s *Storage) ThreadByNumber(imageBoard, board string, number int64, excludedColumns []string) (*domain.StoredThread, error) {
	query := fmt.Sprintf(
		"SELECT %s,%s\n\tFROM threads WHERE image_board = ? AND board = ? AND number = ?",
		threadsTable.projection(excludedColumns), threadCountsSelect,
	)
	r, err := s.fetchOne(query, imageBoard, board, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread by number: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedThreadFromRow(r), nil
}

// Threads returns threads filtered by the optional imageBoard/board values
// (empty string means no filter), with posts_count and files_count computed
// per thread. sortByActivity orders newest activity first.
func (s *Storage) Threads(imageBoard, board string, sortByActivity bool) ([]*domain.StoredThread, error) {
	var conditions []string
	var args []any
	if imageBoard != "" {
		conditions = append(conditions, "image_board = ?")
		args = append(args, imageBoard)
	}
	if board != "" {
		conditions = append(conditions, "board = ?")
		args = append(args, board)
	}

	query := fmt.Sprintf("SELECT %s,%s\n\tFROM threads", threadsTable.projection(nil), threadCountsSelect)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if sortByActivity {
		query += " ORDER BY last_activity DESC"
	} else {
		query += " ORDER BY id"
	}

	rows, err := s.fetchAll(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}

	threads := make([]*domain.StoredThread, 0, len(rows))
	for _, r := range rows {
		threads = append(threads, storedThreadFromRow(r))
	}
	return threads, nil
}

// Boards aggregates the board descriptors present in the threads table,
// optionally narrowed by imageBoard/board.
func (s *Storage) Boards(imageBoard, board string) ([]domain.Board, error) {
	var conditions []string
	var args []any
	if imageBoard != "" {
		conditions = append(conditions, "image_board = ?")
		args = append(args, imageBoard)
	}
	if board != "" {
		conditions = append(conditions, "board = ?")
		args = append(args, board)
	}

	query := "SELECT image_board, board, COUNT(*) AS threads_count FROM threads"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY image_board, board ORDER BY image_board, board"

	rows, err := s.fetchAll(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}

	boards := make([]domain.Board, 0, len(rows))
	for _, r := range rows {
		boards = append(boards, domain.Board{
			ImageBoard:   r.stringAt("image_board"),
			Name:         r.stringAt("board"),
			ThreadsCount: r.intAt("threads_count"),
		})
	}
	return boards, nil
}

const insertThreadSQL = `
	INSERT INTO threads(id, image_board, board, number, title, posters_count, create_timestamp, views_count, last_activity, is_deleted)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertThreadArgs(thread *domain.StoredThread) []any {
	return []any{
		idArg(thread.Id), thread.ImageBoard, thread.Board, thread.Number, thread.Title,
		thread.PostersCount, thread.CreateTimestamp, thread.ViewsCount, thread.LastActivity,
		boolArg(thread.IsDeleted),
	}
}

// InsertThread inserts the thread and returns the generated id.
func (s *Storage) InsertThread(thread *domain.StoredThread) (domain.ThreadId, error) {
	_, id, err := s.run(insertThreadSQL, insertThreadArgs(thread)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert thread: %w", err)
	}
	return id, nil
}

// InsertThreadWithOp inserts a thread together with its opening post and the
// post's files in one transaction, rolling back on any failure.
func (s *Storage) InsertThreadWithOp(thread *domain.StoredThread, op *domain.StoredPost, files []*domain.StoredFile) (domain.ThreadId, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(insertThreadSQL, insertThreadArgs(thread)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert thread: %w", err)
	}
	threadId, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	op.ThreadId = threadId
	result, err = tx.Exec(insertPostSQL, insertPostArgs(op)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert OP post: %w", err)
	}
	postId, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, file := range files {
		file.PostId = postId
		if _, err := tx.Exec(insertFileSQL, insertFileArgs(file)...); err != nil {
			return 0, fmt.Errorf("failed to insert OP file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return threadId, nil
}

// UpdateThread persists exactly the named fields of the record. Unknown
// field names fail with UnknownFieldError before any query runs.
func (s *Storage) UpdateThread(thread *domain.StoredThread, fields []string) error {
	sets, err := threadsTable.setClause(fields)
	if err != nil {
		return err
	}

	args := make([]any, 0, len(fields)+1)
	for _, field := range fields {
		args = append(args, threadFieldValue(thread, field))
	}
	args = append(args, thread.Id)

	query := fmt.Sprintf("UPDATE threads SET %s WHERE id = ?", sets)
	if _, _, err := s.run(query, args...); err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}
	return nil
}

// DeleteThread physically removes a thread; its posts and their files go
// with it through the foreign-key cascades. Returns the number of deleted
// thread rows.
func (s *Storage) DeleteThread(id domain.ThreadId) (int64, error) {
	affected, _, err := s.run("DELETE FROM threads WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete thread: %w", err)
	}
	return affected, nil
}

func threadFieldValue(thread *domain.StoredThread, field string) any {
	switch field {
	case "id":
		return thread.Id
	case "imageBoard":
		return thread.ImageBoard
	case "board":
		return thread.Board
	case "number":
		return thread.Number
	case "title":
		return thread.Title
	case "postersCount":
		return thread.PostersCount
	case "createTimestamp":
		return thread.CreateTimestamp
	case "viewsCount":
		return thread.ViewsCount
	case "lastActivity":
		return thread.LastActivity
	case "isDeleted":
		return boolArg(thread.IsDeleted)
	default:
		return nil
	}
}
