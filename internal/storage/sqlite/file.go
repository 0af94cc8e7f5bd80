package sqlite

import (
	"fmt"

	"github.com/gushi-cookie/chan-parser/shared/domain"
)

// Query module for the files table.
//
// Every lookup takes an excludedColumns list so read paths that serve lists
// or summaries can skip the binary payload columns.

// CreateFilesTable creates the files table if it does not exist. Removing a
// post removes its files through the cascade.
func (s *Storage) CreateFilesTable() error {
	return s.execute(`
	CREATE TABLE IF NOT EXISTS files (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		post_id        INTEGER NOT NULL,
		list_index     INTEGER NOT NULL,
		url            TEXT NOT NULL,
		thumbnail_url  TEXT NOT NULL,
		upload_name    TEXT NOT NULL,
		cdn_name       TEXT NOT NULL,
		check_sum      TEXT NOT NULL,
		is_deleted     INTEGER NOT NULL,
		extension      TEXT,
		data           BLOB,
		thumbnail_data BLOB,
		FOREIGN KEY (post_id)
			REFERENCES posts (id)
			ON DELETE CASCADE
			ON UPDATE NO ACTION
	);`)
}

func storedFileFromRow(r row) *domain.StoredFile {
	return &domain.StoredFile{
		Id:            r.int64At("id"),
		PostId:        r.int64At("post_id"),
		ListIndex:     r.intAt("list_index"),
		URL:           r.stringAt("url"),
		ThumbnailURL:  r.stringAt("thumbnail_url"),
		UploadName:    r.stringAt("upload_name"),
		CdnName:       r.stringAt("cdn_name"),
		CheckSum:      r.stringAt("check_sum"),
		IsDeleted:     r.boolAt("is_deleted"),
		Extension:     r.optStringAt("extension"),
		Data:          r.optBytesAt("data"),
		ThumbnailData: r.optBytesAt("thumbnail_data"),
	}
}

func storedFilesFromRows(rows []row) []*domain.StoredFile {
	files := make([]*domain.StoredFile, 0, len(rows))
	for _, r := range rows {
		files = append(files, storedFileFromRow(r))
	}
	return files
}

// FileById returns the file with the given id, or nil when no row matches.
func (s *Storage) FileById(id domain.FileId, excludedColumns []string) (*domain.StoredFile, error) {
	query := fmt.Sprintf("SELECT %s FROM files WHERE id = ?", filesTable.projection(excludedColumns))
	r, err := s.fetchOne(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file by id: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedFileFromRow(r), nil
}

// FileByURL returns the file with the given source url, or nil. The url is a
// natural alternate key; uniqueness is not enforced by the schema.
func (s *Storage) FileByURL(url string, excludedColumns []string) (*domain.StoredFile, error) {
	query := fmt.Sprintf("SELECT %s FROM files WHERE url = ?", filesTable.projection(excludedColumns))
	r, err := s.fetchOne(query, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file by url: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedFileFromRow(r), nil
}

// FirstFileOfPost returns the post's file with list_index 0, or nil when the
// post has none. Should bad data ever hold several such rows, primary-key
// order picks the winner.
func (s *Storage) FirstFileOfPost(postId domain.PostId, excludedColumns []string) (*domain.StoredFile, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM files WHERE post_id = ? AND list_index = 0 ORDER BY id LIMIT 1",
		filesTable.projection(excludedColumns),
	)
	r, err := s.fetchOne(query, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first file of post: %w", err)
	}
	if r == nil {
		return nil, nil
	}
	return storedFileFromRow(r), nil
}

// FilesOfPost returns all files of a post. Callers that care about display
// order sort by ListIndex themselves.
func (s *Storage) FilesOfPost(postId domain.PostId, excludedColumns []string) ([]*domain.StoredFile, error) {
	query := fmt.Sprintf("SELECT %s FROM files WHERE post_id = ?", filesTable.projection(excludedColumns))
	rows, err := s.fetchAll(query, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files of post: %w", err)
	}
	return storedFilesFromRows(rows), nil
}

// FilesOfPosts returns the files of all the given posts in one batched
// lookup. An empty id set short-circuits without touching the database.
func (s *Storage) FilesOfPosts(postIds []domain.PostId, excludedColumns []string) ([]*domain.StoredFile, error) {
	if len(postIds) == 0 {
		return []*domain.StoredFile{}, nil
	}

	query := fmt.Sprintf(
		"SELECT %s FROM files WHERE post_id IN (%s)",
		filesTable.projection(excludedColumns), placeholders(len(postIds)),
	)
	args := make([]any, len(postIds))
	for i, id := range postIds {
		args[i] = id
	}

	rows, err := s.fetchAll(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files of posts: %w", err)
	}
	return storedFilesFromRows(rows), nil
}

// InsertFile inserts the file and returns the generated id. An unset Id lets
// the engine assign one.
func (s *Storage) InsertFile(file *domain.StoredFile) (domain.FileId, error) {
	_, id, err := s.run(insertFileSQL, insertFileArgs(file)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert file: %w", err)
	}
	return id, nil
}

const insertFileSQL = `
	INSERT INTO files(id, post_id, list_index, url, thumbnail_url, upload_name, cdn_name, check_sum, is_deleted, extension, data, thumbnail_data)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertFileArgs(file *domain.StoredFile) []any {
	return []any{
		idArg(file.Id), file.PostId, file.ListIndex, file.URL, file.ThumbnailURL,
		file.UploadName, file.CdnName, file.CheckSum, boolArg(file.IsDeleted),
		file.Extension.Arg(), file.Data.Arg(), file.ThumbnailData.Arg(),
	}
}

// UpdateFile persists exactly the named fields of the record, leaving every
// other column untouched. Unknown field names fail with UnknownFieldError
// before any query runs.
func (s *Storage) UpdateFile(file *domain.StoredFile, fields []string) error {
	sets, err := filesTable.setClause(fields)
	if err != nil {
		return err
	}

	args := make([]any, 0, len(fields)+1)
	for _, field := range fields {
		args = append(args, fileFieldValue(file, field))
	}
	args = append(args, file.Id)

	query := fmt.Sprintf("UPDATE files SET %s WHERE id = ?", sets)
	if _, _, err := s.run(query, args...); err != nil {
		return fmt.Errorf("failed to update file: %w", err)
	}
	return nil
}

// fileFieldValue binds a declared field's current value. Fields reach here
// already validated against the schema table.
func fileFieldValue(file *domain.StoredFile, field string) any {
	switch field {
	case "id":
		return file.Id
	case "postId":
		return file.PostId
	case "listIndex":
		return file.ListIndex
	case "url":
		return file.URL
	case "thumbnailUrl":
		return file.ThumbnailURL
	case "uploadName":
		return file.UploadName
	case "cdnName":
		return file.CdnName
	case "checkSum":
		return file.CheckSum
	case "isDeleted":
		return boolArg(file.IsDeleted)
	case "extension":
		return file.Extension.Arg()
	case "data":
		return file.Data.Arg()
	case "thumbnailData":
		return file.ThumbnailData.Arg()
	default:
		return nil
	}
}
