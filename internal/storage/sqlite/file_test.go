package sqlite

import (
	"errors"
	"testing"

	"github.com/gushi-cookie/chan-parser/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile(postId domain.PostId, listIndex int) *domain.StoredFile {
	return &domain.StoredFile{
		PostId:        postId,
		ListIndex:     listIndex,
		URL:           "https://i.4cdn.org/g/1700000000000.png",
		ThumbnailURL:  "https://i.4cdn.org/g/1700000000000s.jpg",
		UploadName:    "wallpaper.png",
		CdnName:       "abc123",
		CheckSum:      "d41d8cd98f00b204e9800998ecf8427e",
		Extension:     domain.Some("png"),
		Data:          domain.Null[[]byte](),
		ThumbnailData: domain.Null[[]byte](),
	}
}

func TestInsertFileRoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	id, err := storage.InsertFile(file)
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	got, err := storage.FileById(id, nil)
	require.NoError(t, err)
	require.NotNil(t, got)

	want := testFile(postId, 0)
	want.Id = id
	assert.Equal(t, want, got)
}

func TestInsertFileWithPayloads(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	file.Data = domain.Some([]byte{0x89, 0x50, 0x4e, 0x47})
	file.ThumbnailData = domain.Some([]byte{0xff, 0xd8})
	id, err := storage.InsertFile(file)
	require.NoError(t, err)

	got, err := storage.FileById(id, nil)
	require.NoError(t, err)
	data, ok := got.Data.Get()
	require.True(t, ok)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
	thumb, ok := got.ThumbnailData.Get()
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xd8}, thumb)
}

func TestFileByIdMissingIsNil(t *testing.T) {
	storage := newTestStorage(t)

	got, err := storage.FileById(9999, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileByIdExcludesPayloadColumns(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	file.Data = domain.Some([]byte{1, 2, 3})
	id, err := storage.InsertFile(file)
	require.NoError(t, err)

	got, err := storage.FileById(id, []string{"data", "thumbnail_data"})
	require.NoError(t, err)
	require.NotNil(t, got)

	// Excluded columns stay unloaded, which is not the same as stored NULL.
	assert.False(t, got.Data.Loaded())
	assert.False(t, got.ThumbnailData.Loaded())
	assert.True(t, got.Extension.Loaded())
	ext, ok := got.Extension.Get()
	require.True(t, ok)
	assert.Equal(t, "png", ext)
}

func TestFileByURL(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	_, err := storage.InsertFile(file)
	require.NoError(t, err)

	got, err := storage.FileByURL(file.URL, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, file.URL, got.URL)

	missing, err := storage.FileByURL("https://nowhere.example/x.png", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFirstFileOfPost(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	t.Run("NoFirstFile", func(t *testing.T) {
		_, err := storage.InsertFile(testFile(postId, 1))
		require.NoError(t, err)

		got, err := storage.FirstFileOfPost(postId, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SingleFirstFile", func(t *testing.T) {
		id, err := storage.InsertFile(testFile(postId, 0))
		require.NoError(t, err)

		got, err := storage.FirstFileOfPost(postId, nil)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.Id)
		assert.Equal(t, 0, got.ListIndex)
	})

	t.Run("DuplicateFirstFilesTieBreakByPrimaryKey", func(t *testing.T) {
		// The invariant says at most one file has list_index 0; should bad
		// data violate it, the lowest id wins.
		duplicate := testFile(postId, 0)
		duplicate.URL = "https://i.4cdn.org/g/duplicate.png"
		_, err := storage.InsertFile(duplicate)
		require.NoError(t, err)

		files, err := storage.FilesOfPost(postId, nil)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(files), 2)

		got, err := storage.FirstFileOfPost(postId, nil)
		require.NoError(t, err)
		require.NotNil(t, got)
		var lowest domain.FileId
		for _, f := range files {
			if f.ListIndex == 0 && (lowest == 0 || f.Id < lowest) {
				lowest = f.Id
			}
		}
		assert.Equal(t, lowest, got.Id)
	})
}

func TestFilesOfPosts(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	firstPost := seedPost(t, storage, threadId, 0)
	secondPost := seedPost(t, storage, threadId, 1)
	thirdPost := seedPost(t, storage, threadId, 2)

	_, err := storage.InsertFile(testFile(firstPost, 0))
	require.NoError(t, err)
	_, err = storage.InsertFile(testFile(secondPost, 0))
	require.NoError(t, err)
	_, err = storage.InsertFile(testFile(secondPost, 1))
	require.NoError(t, err)

	files, err := storage.FilesOfPosts([]domain.PostId{firstPost, secondPost}, nil)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = storage.FilesOfPosts([]domain.PostId{thirdPost}, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesOfPostsEmptyInputIssuesNoQuery(t *testing.T) {
	storage := newTestStorage(t)

	// A closed handle fails on any query, so a clean empty result proves the
	// lookup short-circuited.
	require.NoError(t, storage.Cleanup())

	files, err := storage.FilesOfPosts(nil, nil)
	require.NoError(t, err)
	require.NotNil(t, files)
	assert.Empty(t, files)
}

func TestUpdateFilePartial(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	id, err := storage.InsertFile(file)
	require.NoError(t, err)
	file.Id = id

	before, err := storage.FileById(id, nil)
	require.NoError(t, err)

	file.IsDeleted = true
	file.URL = "https://should-not-be-persisted.example"
	require.NoError(t, storage.UpdateFile(file, []string{"isDeleted"}))

	after, err := storage.FileById(id, nil)
	require.NoError(t, err)
	assert.True(t, after.IsDeleted)

	// Everything but the named field stays untouched.
	before.IsDeleted = true
	assert.Equal(t, before, after)
}

func TestUpdateFileNullsExtension(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	id, err := storage.InsertFile(file)
	require.NoError(t, err)
	file.Id = id

	file.Extension = domain.Null[string]()
	require.NoError(t, storage.UpdateFile(file, []string{"extension"}))

	got, err := storage.FileById(id, nil)
	require.NoError(t, err)
	assert.True(t, got.Extension.Loaded())
	assert.False(t, got.Extension.Valid())
}

func TestUpdateFileNoFieldsFailsFast(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	id, err := storage.InsertFile(file)
	require.NoError(t, err)
	file.Id = id

	require.Error(t, storage.UpdateFile(file, nil))
	require.Error(t, storage.UpdateFile(file, []string{}))
}

func TestUpdateFileUnknownFieldFailsFast(t *testing.T) {
	storage := newTestStorage(t)
	threadId := seedThread(t, storage)
	postId := seedPost(t, storage, threadId, 0)

	file := testFile(postId, 0)
	id, err := storage.InsertFile(file)
	require.NoError(t, err)
	file.Id = id

	err = storage.UpdateFile(file, []string{"isDeleted", "cdn_name"}) // column name, not field name
	require.Error(t, err)

	var unknown *UnknownFieldError
	require.True(t, errors.As(err, &unknown))

	// The update never ran.
	got, err := storage.FileById(id, nil)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
}
