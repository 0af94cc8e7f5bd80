package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gushi-cookie/chan-parser/shared/domain"
	internal_errors "github.com/gushi-cookie/chan-parser/shared/errors"
	"github.com/microcosm-cc/bluemonday"
)

// payloadColumns are excluded from every file read issued for catalog views:
// the binary payloads are expensive to transfer and summaries never need them.
var payloadColumns = []string{"data", "thumbnail_data"}

type CatalogService interface {
	Thread(id domain.ThreadId) (*domain.CatalogEntry, error)
	Threads(imageBoard, board string) ([]domain.CatalogEntry, error)
	Boards(imageBoard, board string) ([]domain.Board, error)
}

type CatalogStorage interface {
	ThreadById(id domain.ThreadId, excludedColumns []string) (*domain.StoredThread, error)
	Threads(imageBoard, board string, sortByActivity bool) ([]*domain.StoredThread, error)
	Boards(imageBoard, board string) ([]domain.Board, error)
	FirstPostOfThread(threadId domain.ThreadId, excludedColumns []string) (*domain.StoredPost, error)
	PostsOfThreads(threadIds []domain.ThreadId, excludedColumns []string) ([]*domain.StoredPost, error)
	FirstFileOfPost(postId domain.PostId, excludedColumns []string) (*domain.StoredFile, error)
	FilesOfPosts(postIds []domain.PostId, excludedColumns []string) ([]*domain.StoredFile, error)
}

// Catalog composes catalog entries (thread + first post + first file) from
// the storage read model.
//
// With batchReads disabled the listing issues one post and one file lookup
// per thread, strictly sequentially — acceptable for catalog page sizes.
// With batchReads enabled the related reads collapse into two IN lookups;
// the single-item contract stays the same either way.
type Catalog struct {
	storage    CatalogStorage
	batchReads bool
	sanitizer  *bluemonday.Policy
}

func NewCatalog(storage CatalogStorage, batchReads bool) *Catalog {
	return &Catalog{
		storage:    storage,
		batchReads: batchReads,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// Thread composes the catalog entry for a single thread. A missing thread is
// a not-found outcome. A thread with no OP post violates the storage
// invariant; it is reported as not-found too, since the response shape cannot
// be satisfied and partial results are never returned.
func (c *Catalog) Thread(id domain.ThreadId) (*domain.CatalogEntry, error) {
	thread, err := c.storage.ThreadById(id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	if thread == nil {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	post, err := c.storage.FirstPostOfThread(thread.Id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first post of thread: %w", err)
	}
	if post == nil {
		slog.Warn("thread has no OP post", "thread_id", thread.Id)
		return nil, &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found",
			StatusCode: http.StatusNotFound,
		}
	}

	file, err := c.storage.FirstFileOfPost(post.Id, payloadColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first file of post: %w", err)
	}

	entry := c.newEntry(thread, post, file)
	return &entry, nil
}

// Threads composes catalog entries for the filtered thread listing, sorted
// by last activity. Threads without an OP post are skipped.
func (c *Catalog) Threads(imageBoard, board string) ([]domain.CatalogEntry, error) {
	threads, err := c.storage.Threads(imageBoard, board, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	if c.batchReads {
		return c.composeBatched(threads)
	}
	return c.composeSequential(threads)
}

func (c *Catalog) Boards(imageBoard, board string) ([]domain.Board, error) {
	boards, err := c.storage.Boards(imageBoard, board)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}
	return boards, nil
}

// composeSequential issues one related read per thread. Each step depends on
// the previous step's resolved id, so the reads stay sequential.
func (c *Catalog) composeSequential(threads []*domain.StoredThread) ([]domain.CatalogEntry, error) {
	entries := make([]domain.CatalogEntry, 0, len(threads))
	for _, thread := range threads {
		post, err := c.storage.FirstPostOfThread(thread.Id, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch first post of thread: %w", err)
		}
		if post == nil {
			slog.Warn("thread has no OP post, skipping", "thread_id", thread.Id)
			continue
		}

		file, err := c.storage.FirstFileOfPost(post.Id, payloadColumns)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch first file of post: %w", err)
		}

		entries = append(entries, c.newEntry(thread, post, file))
	}
	return entries, nil
}

// composeBatched resolves first posts and first files for the whole listing
// with two IN lookups over the parent ids.
func (c *Catalog) composeBatched(threads []*domain.StoredThread) ([]domain.CatalogEntry, error) {
	threadIds := make([]domain.ThreadId, len(threads))
	for i, thread := range threads {
		threadIds[i] = thread.Id
	}

	posts, err := c.storage.PostsOfThreads(threadIds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts of threads: %w", err)
	}
	opByThread := make(map[domain.ThreadId]*domain.StoredPost, len(threads))
	for _, post := range posts {
		if post.ListIndex != 0 {
			continue
		}
		// Same tie-break as the single lookup: lowest id wins.
		if current, ok := opByThread[post.ThreadId]; !ok || post.Id < current.Id {
			opByThread[post.ThreadId] = post
		}
	}

	postIds := make([]domain.PostId, 0, len(opByThread))
	for _, post := range opByThread {
		postIds = append(postIds, post.Id)
	}
	sort.Slice(postIds, func(i, j int) bool { return postIds[i] < postIds[j] })

	files, err := c.storage.FilesOfPosts(postIds, payloadColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files of posts: %w", err)
	}
	firstFileByPost := make(map[domain.PostId]*domain.StoredFile)
	for _, file := range files {
		if file.ListIndex != 0 {
			continue
		}
		if current, ok := firstFileByPost[file.PostId]; !ok || file.Id < current.Id {
			firstFileByPost[file.PostId] = file
		}
	}

	entries := make([]domain.CatalogEntry, 0, len(threads))
	for _, thread := range threads {
		post, ok := opByThread[thread.Id]
		if !ok {
			slog.Warn("thread has no OP post, skipping", "thread_id", thread.Id)
			continue
		}
		entries = append(entries, c.newEntry(thread, post, firstFileByPost[post.Id]))
	}
	return entries, nil
}

func (c *Catalog) newEntry(thread *domain.StoredThread, post *domain.StoredPost, file *domain.StoredFile) domain.CatalogEntry {
	return domain.CatalogEntry{
		Thread: threadSummary(thread),
		Post:   c.postSummary(post),
		File:   fileSummary(file),
	}
}

func threadSummary(t *domain.StoredThread) domain.ThreadSummary {
	return domain.ThreadSummary{
		Id:              t.Id,
		Board:           t.Board,
		ImageBoard:      t.ImageBoard,
		Number:          t.Number,
		Title:           t.Title,
		PostersCount:    t.PostersCount,
		CreateTimestamp: t.CreateTimestamp,
		ViewsCount:      t.ViewsCount,
		LastActivity:    t.LastActivity,
		IsDeleted:       t.IsDeleted,
		PostsCount:      t.PostsCount,
		FilesCount:      t.FilesCount,
	}
}

// postSummary shapes a post for the catalog. Scraped comment HTML passes
// through the UGC sanitation policy before leaving the service.
func (c *Catalog) postSummary(p *domain.StoredPost) domain.PostSummary {
	return domain.PostSummary{
		Id:              p.Id,
		Number:          p.Number,
		ListIndex:       p.ListIndex,
		CreateTimestamp: p.CreateTimestamp,
		Name:            p.Name,
		Comment:         c.sanitizer.Sanitize(p.Comment),
		IsBanned:        p.IsBanned,
		IsDeleted:       p.IsDeleted,
		IsOp:            p.IsOp,
	}
}

// fileSummary derives the CDN urls from the stored filename parts. A nil
// file yields a nil summary; a file whose extension is NULL yields a summary
// with nil urls — the upstream file is gone but the row remains.
func fileSummary(f *domain.StoredFile) *domain.FileSummary {
	if f == nil {
		return nil
	}

	summary := &domain.FileSummary{Id: f.Id, ListIndex: f.ListIndex}
	if extension, ok := f.Extension.Get(); ok {
		url := fmt.Sprintf("/cdn/file/%d/%s.%s", f.Id, f.CdnName, extension)
		thumbnail := fmt.Sprintf("/cdn/thumbnail/%d/%s_s.png", f.Id, f.CdnName)
		summary.URL = &url
		summary.ThumbnailURL = &thumbnail
	}
	return summary
}
