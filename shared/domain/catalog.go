package domain

// Catalog read models. A CatalogEntry is composed on demand from a thread,
// its first post and that post's first file; it is never persisted.

type ThreadSummary struct {
	Id              ThreadId `json:"id"`
	Board           string   `json:"board"`
	ImageBoard      string   `json:"imageBoard"`
	Number          int64    `json:"number"`
	Title           string   `json:"title"`
	PostersCount    int      `json:"postersCount"`
	CreateTimestamp int64    `json:"createTimestamp"`
	ViewsCount      int      `json:"viewsCount"`
	LastActivity    int64    `json:"lastActivity"`
	IsDeleted       bool     `json:"isDeleted"`
	PostsCount      int      `json:"postsCount"`
	FilesCount      int      `json:"filesCount"`
}

type PostSummary struct {
	Id              PostId `json:"id"`
	Number          int64  `json:"number"`
	ListIndex       int    `json:"listIndex"`
	CreateTimestamp int64  `json:"createTimestamp"`
	Name            string `json:"name"`
	Comment         string `json:"comment"`
	IsBanned        bool   `json:"isBanned"`
	IsDeleted       bool   `json:"isDeleted"`
	IsOp            bool   `json:"isOp"`
}

// FileSummary keeps two distinct "no visual" cases: a missing file row maps
// to a nil *FileSummary on the entry, while a row whose extension is NULL
// yields a summary with nil URL and ThumbnailURL.
type FileSummary struct {
	Id           FileId  `json:"id"`
	ListIndex    int     `json:"listIndex"`
	URL          *string `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

type CatalogEntry struct {
	Thread ThreadSummary `json:"thread"`
	Post   PostSummary   `json:"post"`
	File   *FileSummary  `json:"file"`
}
