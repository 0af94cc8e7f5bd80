package domain

type FileId = int64

// File is the shape produced by the threads-observer scraping pipeline for a
// post attachment. The observer diffs freshly scraped files against persisted
// state, so both directions of the mapping live here.
type File struct {
	Id           FileId
	ListIndex    int
	URL          string
	ThumbnailURL string
	UploadName   string
	CdnName      string
	CheckSum     string
	IsDeleted    bool
}

// StoredFile mirrors a row of the files table.
//
// Extension is NULL when the upstream file is no longer retrievable even
// though the row remains. Data and ThumbnailData are excluded from every
// list/summary read path and stay unloaded there.
type StoredFile struct {
	Id            FileId
	PostId        PostId
	ListIndex     int
	URL           string
	ThumbnailURL  string
	UploadName    string
	CdnName       string
	CheckSum      string
	IsDeleted     bool
	Extension     Opt[string]
	Data          Opt[[]byte]
	ThumbnailData Opt[[]byte]
}

// StoredFileFromScraped builds a not-yet-persisted record from an observer
// file and its owning post. Id stays unset unless the observer already knows it.
func StoredFileFromScraped(file *File, postId PostId) *StoredFile {
	return &StoredFile{
		Id:            file.Id,
		PostId:        postId,
		ListIndex:     file.ListIndex,
		URL:           file.URL,
		ThumbnailURL:  file.ThumbnailURL,
		UploadName:    file.UploadName,
		CdnName:       file.CdnName,
		CheckSum:      file.CheckSum,
		IsDeleted:     file.IsDeleted,
		Extension:     Null[string](),
		Data:          Null[[]byte](),
		ThumbnailData: Null[[]byte](),
	}
}

// ToScraped reconstructs the observer shape from the stored record.
func (f *StoredFile) ToScraped() *File {
	return &File{
		Id:           f.Id,
		ListIndex:    f.ListIndex,
		URL:          f.URL,
		ThumbnailURL: f.ThumbnailURL,
		UploadName:   f.UploadName,
		CdnName:      f.CdnName,
		CheckSum:     f.CheckSum,
		IsDeleted:    f.IsDeleted,
	}
}
