package suffixtrie

import "strings"

// EmptyDictionary 词典为空时的显示文本
const EmptyDictionary = "dictionary is empty"

// Trie 保存插入过的词典以及根节点
type Trie struct {
	dictionary []string // 按插入顺序保存的原始词语, 允许重复
	root       *Node    // 根节点, 第一次插入时创建
}

// New 创建一个空的Trie
func New() *Trie {
	return &Trie{}
}

// AddWord 添加一个词
// 词被原样追加到词典, 并作为一条完整后缀插入根节点
func (t *Trie) AddWord(word string) {
	t.dictionary = append(t.dictionary, word)
	if t.root == nil {
		t.root = NewNode()
	}
	t.root.AddSuffix(word)
}

// AddWords 按顺序逐个添加词
func (t *Trie) AddWords(words []string) {
	for _, word := range words {
		t.AddWord(word)
	}
}

// FindPrefixes 查找以prefix开头的所有词的剩余部分, 结果去重且无序
// 从未插入过词或前缀不存在时返回 nil, false
func (t *Trie) FindPrefixes(prefix string) (map[string]struct{}, bool) {
	if t.root == nil {
		return nil, false
	}
	suffixes, ok := t.root.FindByPrefix(prefix)
	if !ok {
		return nil, false
	}
	set := make(map[string]struct{}, len(suffixes))
	for _, s := range suffixes {
		set[s] = struct{}{}
	}
	return set, true
}

// Contains 判断word是否作为完整的词被插入过
func (t *Trie) Contains(word string) bool {
	return t.root != nil && t.root.Contains(word)
}

// Root 返回根节点, 未插入过词时为nil
func (t *Trie) Root() *Node { return t.root }

// Dictionary 返回词典副本
func (t *Trie) Dictionary() []string {
	out := make([]string, len(t.dictionary))
	copy(out, t.dictionary)
	return out
}

// Len 词典中的词数, 包含重复
func (t *Trie) Len() int { return len(t.dictionary) }

// String 以换行拼接词典, 词典为空时返回 EmptyDictionary
func (t *Trie) String() string {
	if len(t.dictionary) == 0 {
		return EmptyDictionary
	}
	return strings.Join(t.dictionary, "\n")
}
