package domain

type ThreadId = int64

// Thread is the shape produced by the threads-observer scraping pipeline.
type Thread struct {
	Id              ThreadId
	ImageBoard      string
	Board           string
	Number          int64
	Title           string
	PostersCount    int
	CreateTimestamp int64
	ViewsCount      int
	LastActivity    int64
	IsDeleted       bool
	Posts           []*Post
}

// StoredThread mirrors a row of the threads table. PostsCount and FilesCount
// are not columns; the listing query computes them.
type StoredThread struct {
	Id              ThreadId
	ImageBoard      string
	Board           string
	Number          int64
	Title           string
	PostersCount    int
	CreateTimestamp int64
	ViewsCount      int
	LastActivity    int64
	IsDeleted       bool

	PostsCount int
	FilesCount int
}

// Board describes a scraped board aggregated over the threads table.
type Board struct {
	ImageBoard   string `json:"imageBoard"`
	Name         string `json:"board"`
	ThreadsCount int    `json:"threadsCount"`
}

// StoredThreadFromScraped builds a not-yet-persisted record from an observer thread.
func StoredThreadFromScraped(thread *Thread) *StoredThread {
	return &StoredThread{
		Id:              thread.Id,
		ImageBoard:      thread.ImageBoard,
		Board:           thread.Board,
		Number:          thread.Number,
		Title:           thread.Title,
		PostersCount:    thread.PostersCount,
		CreateTimestamp: thread.CreateTimestamp,
		ViewsCount:      thread.ViewsCount,
		LastActivity:    thread.LastActivity,
		IsDeleted:       thread.IsDeleted,
	}
}

// ToScraped reconstructs the observer shape with the thread's posts.
func (t *StoredThread) ToScraped(posts []*Post) *Thread {
	return &Thread{
		Id:              t.Id,
		ImageBoard:      t.ImageBoard,
		Board:           t.Board,
		Number:          t.Number,
		Title:           t.Title,
		PostersCount:    t.PostersCount,
		CreateTimestamp: t.CreateTimestamp,
		ViewsCount:      t.ViewsCount,
		LastActivity:    t.LastActivity,
		IsDeleted:       t.IsDeleted,
		Posts:           posts,
	}
}
