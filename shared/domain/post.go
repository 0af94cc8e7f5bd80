package domain

type PostId = int64

// Post is the shape produced by the threads-observer scraping pipeline.
type Post struct {
	Id              PostId
	ListIndex       int
	Number          int64
	CreateTimestamp int64
	Name            string
	Comment         string
	Files           []*File
	IsBanned        bool
	IsDeleted       bool
	IsOp            bool
}

// StoredPost mirrors a row of the posts table. Exactly one post per thread
// has ListIndex == 0 and IsOp == true.
type StoredPost struct {
	Id              PostId
	ThreadId        ThreadId
	Number          int64
	ListIndex       int
	CreateTimestamp int64
	Name            string
	Comment         string
	IsBanned        bool
	IsDeleted       bool
	IsOp            bool
}

// StoredPostFromScraped builds a not-yet-persisted record from an observer
// post and its owning thread.
func StoredPostFromScraped(post *Post, threadId ThreadId) *StoredPost {
	return &StoredPost{
		Id:              post.Id,
		ThreadId:        threadId,
		Number:          post.Number,
		ListIndex:       post.ListIndex,
		CreateTimestamp: post.CreateTimestamp,
		Name:            post.Name,
		Comment:         post.Comment,
		IsBanned:        post.IsBanned,
		IsDeleted:       post.IsDeleted,
		IsOp:            post.IsOp,
	}
}

// ToScraped reconstructs the observer shape. Files are the post's stored
// files already converted by the caller.
func (p *StoredPost) ToScraped(files []*File) *Post {
	return &Post{
		Id:              p.Id,
		ListIndex:       p.ListIndex,
		Number:          p.Number,
		CreateTimestamp: p.CreateTimestamp,
		Name:            p.Name,
		Comment:         p.Comment,
		Files:           files,
		IsBanned:        p.IsBanned,
		IsDeleted:       p.IsDeleted,
		IsOp:            p.IsOp,
	}
}
