package participle

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miajio/sfxtrie/pkg/badger"
)

// fieldSegmenter 按空白分词
type fieldSegmenter struct {
	tokens []string
	dict   []string
	reject bool
}

func (s *fieldSegmenter) Cut(str string, hmm ...bool) []string { return strings.Fields(str) }

func (s *fieldSegmenter) AddToken(text string, freq float64, pos ...string) error {
	if s.reject {
		return errors.New("rejected")
	}
	s.tokens = append(s.tokens, text)
	return nil
}

func (s *fieldSegmenter) LoadDictStr(dict string) error {
	s.dict = append(s.dict, strings.Split(dict, "\n")...)
	return nil
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *fieldSegmenter) {
	t.Helper()
	seg := &fieldSegmenter{}
	opts = append([]Option{WithSegmenter(seg), WithLogger(zerolog.Nop())}, opts...)
	e, err := New(opts...)
	require.NoError(t, err)
	return e, seg
}

func TestSuggest(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddWords([]string{
		"Huuu", "Helo", "Hello", "Helium",
		"Mem", "Memory", "Meme", "Memento",
	}))

	got, ok := e.Suggest("He")
	require.True(t, ok)
	assert.Equal(t, []string{"lium", "llo", "lo"}, got)

	got, ok = e.Suggest("Me")
	require.True(t, ok)
	assert.Equal(t, []string{"m", "me", "mento", "mory"}, got)

	got, ok = e.Suggest("Z")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSuggestEmptyEngine(t *testing.T) {
	e, _ := newEngine(t)
	_, ok := e.Suggest("")
	assert.False(t, ok)
	assert.Equal(t, "dictionary is empty", e.String())
	assert.NoError(t, e.Close())
}

func TestAddWordRegistersToken(t *testing.T) {
	e, seg := newEngine(t)
	require.NoError(t, e.AddWord("Tempo", 10, "n"))
	assert.Equal(t, []string{"Tempo"}, seg.tokens)
	assert.True(t, e.Contains("Tempo"))
}

func TestAddWordToleratesSegmenterError(t *testing.T) {
	seg := &fieldSegmenter{reject: true}
	e, err := New(WithSegmenter(seg), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NoError(t, e.AddWord("Tempo", 10, "n"))
	assert.True(t, e.Contains("Tempo"))
}

func TestLearnFromText(t *testing.T) {
	e, _ := newEngine(t)
	require.NoError(t, e.AddWord("Demo", DefaultFrequency, DefaultPos))

	learned, err := e.LearnFromText("Demo , a Democracy !! Demonstration Democracy ——")
	require.NoError(t, err)
	assert.Equal(t, []string{"Democracy", "Demonstration"}, learned)
	assert.Equal(t, []string{"Demo", "Democracy", "Demonstration"}, e.Words())

	got, ok := e.Suggest("Dem")
	require.True(t, ok)
	assert.Equal(t, []string{"o", "ocracy", "onstration"}, got)
}

func TestSegment(t *testing.T) {
	e, _ := newEngine(t)
	assert.Equal(t, []string{"a", "b"}, e.Segment(" a  b "))
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := badger.InMemory()
	require.NoError(t, err)

	e, _ := newEngine(t, WithStore(store))
	// 插入顺序超过一个字节的序号, 检查大端key顺序
	words := make([]string, 0, 300)
	for i := 0; i < 300; i++ {
		words = append(words, "w"+strings.Repeat("x", i%7))
	}
	words = append(words, "Zeta", "Alpha", "Zeta")
	require.NoError(t, e.AddWords(words))

	reloaded, seg := newEngine(t, WithStore(store))
	assert.Equal(t, words, reloaded.Words())
	assert.Len(t, seg.dict, len(words))
	assert.Equal(t, "Zeta 1000.000000 nz", seg.dict[300])

	require.NoError(t, reloaded.AddWord("Omega", 1, "n"))
	again, _ := newEngine(t, WithStore(store))
	assert.Equal(t, append(words, "Omega"), again.Words())

	require.NoError(t, again.Close())
}

func TestStoreMalformedEntry(t *testing.T) {
	store, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(entryKey(0), []byte("{not json")))
	_, err = New(WithStore(store), WithSegmenter(&fieldSegmenter{}), WithLogger(zerolog.Nop()))
	assert.Error(t, err)
}

func TestStoreMalformedKey(t *testing.T) {
	store, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set([]byte("dict/short"), []byte("{}")))
	_, err = New(WithStore(store), WithSegmenter(&fieldSegmenter{}), WithLogger(zerolog.Nop()))
	assert.Error(t, err)
}

func TestEntryKey(t *testing.T) {
	seq, err := entrySeq(entryKey(258))
	require.NoError(t, err)
	assert.Equal(t, uint64(258), seq)
	assert.Less(t, string(entryKey(255)), string(entryKey(256)))
}

func TestIsSpecialChar(t *testing.T) {
	assert.True(t, IsSpecialChar("，"))
	assert.True(t, IsSpecialChar("!?"))
	assert.True(t, IsSpecialChar(" "))
	assert.False(t, IsSpecialChar(""))
	assert.False(t, IsSpecialChar("a,"))
	assert.False(t, IsSpecialChar("词"))
}

func TestImportAppendsAfterExistingEntries(t *testing.T) {
	src, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	from, _ := newEngine(t, WithStore(src))
	require.NoError(t, from.AddWord("Helo", 5, "n"))
	require.NoError(t, from.AddWord("Hello", 7, "v"))

	dst, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = dst.Close() })

	to, seg := newEngine(t, WithStore(dst))
	require.NoError(t, to.AddWords([]string{"Tempo", "Templar"}))

	n, err := to.Import(src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Tempo", "Templar", "Helo", "Hello"}, to.Words())
	assert.Equal(t, []string{"Tempo", "Templar", "Helo", "Hello"}, seg.tokens)

	// 词频和词性随词条一起导入
	var got []DictEntry
	require.NoError(t, readEntries(dst, func(seq uint64, entry DictEntry) error {
		got = append(got, entry)
		return nil
	}))
	require.Len(t, got, 4)
	assert.Equal(t, DictEntry{Content: "Hello", Frequency: 7, Pos: "v"}, got[3])

	reloaded, _ := newEngine(t, WithStore(dst))
	assert.Equal(t, []string{"Tempo", "Templar", "Helo", "Hello"}, reloaded.Words())
}

func TestImportMalformedSource(t *testing.T) {
	src, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	require.NoError(t, src.Set(entryKey(0), []byte("{not json")))

	e, _ := newEngine(t)
	n, err := e.Import(src)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "dictionary is empty", e.String())
}

func TestAddWordEncodeError(t *testing.T) {
	store, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	e, _ := newEngine(t, WithStore(store))
	err = e.AddWord("Meme", math.NaN(), DefaultPos)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode entry")
	var unsupported *json.UnsupportedValueError
	assert.ErrorAs(t, err, &unsupported)
	assert.False(t, e.Contains("Meme"))
}

func TestDefaultGseSegmenter(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the embedded gse dictionary")
	}

	store, err := badger.InMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	e, err := New(WithStore(store), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.NoError(t, e.AddWords([]string{"前缀树", "前缀"}))
	require.NoError(t, e.AddWord("前进", 2000, "v"))

	got, ok := e.Suggest("前")
	require.True(t, ok)
	assert.Equal(t, []string{"缀", "缀树", "进"}, got)

	text := "我们使用前缀树查询词语"
	tokens := e.Segment(text)
	assert.NotEmpty(t, tokens)
	assert.Equal(t, text, strings.Join(tokens, ""))

	// 重新载入时已保存的词条以gse词典格式加入分词器
	reloaded, err := New(WithStore(store), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, []string{"前缀树", "前缀", "前进"}, reloaded.Words())
	assert.NotEmpty(t, reloaded.Segment(text))
}
