package participle

import (
	"encoding/binary"
	"fmt"
)

// 词条默认词频及词性
const (
	DefaultFrequency = 1000.0
	DefaultPos       = "nz" // 其他专名
)

// entryPrefix 词条在数据库中的key前缀
var entryPrefix = []byte("dict/")

// DictEntry 字典词条
type DictEntry struct {
	Content   string  `json:"content"`   // 词条内容
	Frequency float64 `json:"frequency"` // 词频
	Pos       string  `json:"pos"`       // 词性
}

// gseLine gse词典格式的一行
func (e DictEntry) gseLine() string {
	return fmt.Sprintf("%s %f %s", e.Content, e.Frequency, e.Pos)
}

// entryKey 按序号生成key, 大端编码保证key顺序即插入顺序
func entryKey(seq uint64) []byte {
	key := make([]byte, len(entryPrefix)+8)
	copy(key, entryPrefix)
	binary.BigEndian.PutUint64(key[len(entryPrefix):], seq)
	return key
}

// entrySeq 从key中解析序号
func entrySeq(key []byte) (uint64, error) {
	if len(key) != len(entryPrefix)+8 {
		return 0, fmt.Errorf("malformed dictionary key %q", key)
	}
	return binary.BigEndian.Uint64(key[len(entryPrefix):]), nil
}
