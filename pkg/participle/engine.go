package participle

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-ego/gse"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/miajio/sfxtrie/pkg/badger"
	"github.com/miajio/sfxtrie/pkg/suffixtrie"
)

// Segmenter 分词器, *gse.Segmenter 满足该接口
type Segmenter interface {
	Cut(str string, hmm ...bool) []string
	AddToken(text string, freq float64, pos ...string) error
	LoadDictStr(dict string) error
}

// Option 引擎选项
type Option func(*Engine)

// WithStore 使用badger引擎作为词典来源并保存新词
func WithStore(store *badger.Engine) Option {
	return func(e *Engine) { e.store = store }
}

// WithSegmenter 替换默认的gse分词器
func WithSegmenter(seg Segmenter) Option {
	return func(e *Engine) { e.segmenter = seg }
}

// WithLogger 设置日志
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// Engine 分词引擎
// 非并发安全
type Engine struct {
	store     *badger.Engine   // 数据库, 可为空
	segmenter Segmenter        // 分词器
	trie      *suffixtrie.Trie // 前缀树
	nextSeq   uint64           // 下一个词条序号
	logger    zerolog.Logger
}

// New 创建分词引擎
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		trie:   suffixtrie.New(),
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}

	// 从数据库加载已有词典到前缀树
	var entries []DictEntry
	if e.store != nil {
		var err error
		if entries, err = e.loadDictionaryFromDB(); err != nil {
			return nil, fmt.Errorf("read db load dict fail: %w", err)
		}
	}

	if e.segmenter == nil {
		// 使用编译进程序的词典, 不依赖gse源码目录
		seg, err := gse.NewEmbed()
		if err != nil {
			return nil, fmt.Errorf("init gse segmenter: %w", err)
		}
		e.segmenter = &seg
	}

	// 将已有词条加载到分词器
	if len(entries) > 0 {
		lines := make([]string, 0, len(entries))
		for _, entry := range entries {
			lines = append(lines, entry.gseLine())
		}
		if err := e.segmenter.LoadDictStr(strings.Join(lines, "\n")); err != nil {
			return nil, fmt.Errorf("load dict into segmenter: %w", err)
		}
	}

	e.logger.Debug().Int("words", len(entries)).Msg("dictionary engine ready")
	return e, nil
}

// loadDictionaryFromDB 按插入顺序读取数据库中的词条并加入前缀树
func (e *Engine) loadDictionaryFromDB() ([]DictEntry, error) {
	var entries []DictEntry
	err := readEntries(e.store, func(seq uint64, entry DictEntry) error {
		e.trie.AddWord(entry.Content)
		entries = append(entries, entry)
		e.nextSeq = seq + 1
		return nil
	})
	return entries, err
}

// readEntries 按插入顺序遍历存储中的词条
func readEntries(store *badger.Engine, fn func(seq uint64, entry DictEntry) error) error {
	return store.Iterate(entryPrefix, func(key, value []byte) error {
		seq, err := entrySeq(key)
		if err != nil {
			return err
		}
		var entry DictEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return fmt.Errorf("decode entry %d: %w", seq, err)
		}
		return fn(seq, entry)
	})
}

// Import 将src中的词条按原顺序追加到词典末尾, 已有词条不受影响
// src通常是载入了备份文件的临时存储
func (e *Engine) Import(src *badger.Engine) (int, error) {
	var entries []DictEntry
	err := readEntries(src, func(_ uint64, entry DictEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("read import source: %w", err)
	}
	for i, entry := range entries {
		if err := e.AddWord(entry.Content, entry.Frequency, entry.Pos); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}

// AddWord 添加一个新词到词典
func (e *Engine) AddWord(content string, frequency float64, pos string) error {
	entry := DictEntry{
		Content:   content,
		Frequency: frequency,
		Pos:       pos,
	}

	if e.store != nil {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encode entry %q: %w", content, err)
		}
		if err := e.store.Set(entryKey(e.nextSeq), data); err != nil {
			return fmt.Errorf("save content to db fail: %w", err)
		}
		e.nextSeq++
	}

	e.trie.AddWord(content)

	if err := e.segmenter.AddToken(content, frequency, pos); err != nil {
		e.logger.Warn().Err(err).Str("word", content).Msg("segmenter rejected token")
	}
	return nil
}

// AddWords 以默认词频和词性添加多个词
func (e *Engine) AddWords(words []string) error {
	for _, word := range words {
		if err := e.AddWord(word, DefaultFrequency, DefaultPos); err != nil {
			return err
		}
	}
	return nil
}

// LearnFromText 从文本中学习新词汇, 返回新学到的词
func (e *Engine) LearnFromText(text string) ([]string, error) {
	var learned []string
	for _, content := range e.segmenter.Cut(text, true) {
		// 跳过特殊符号和单字节词
		if len(content) <= 1 || IsSpecialChar(content) {
			continue
		}
		if e.trie.Contains(content) {
			continue
		}
		if err := e.AddWord(content, DefaultFrequency, DefaultPos); err != nil {
			return learned, fmt.Errorf("learn word %q: %w", content, err)
		}
		e.logger.Info().Str("word", content).Msg("learned new word")
		learned = append(learned, content)
	}
	return learned, nil
}

// Segment 对文本进行分词
func (e *Engine) Segment(text string) []string {
	return e.segmenter.Cut(text, true)
}

// Suggest 返回以prefix开头的词的剩余部分, 按字典序排列
func (e *Engine) Suggest(prefix string) ([]string, bool) {
	set, ok := e.trie.FindPrefixes(prefix)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, true
}

// Contains 判断词是否已在词典中
func (e *Engine) Contains(word string) bool { return e.trie.Contains(word) }

// Words 按插入顺序返回词典
func (e *Engine) Words() []string { return e.trie.Dictionary() }

// String 词典的文本形式
func (e *Engine) String() string { return e.trie.String() }

// Close 关闭词典
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
