// Package suffixtrie 提供一个按字符索引的内存前缀树, 用于按前缀查找词典中词语的后续部分.
//
// 注意: AddWord 每次只把整个词作为一条后缀插入树中, 并不会像教科书中的后缀树那样
// 为词的每一个起始位置单独建立索引. 因此 FindPrefixes 只能匹配从词首开始的前缀,
// 例如插入 "Hello" 后查询 "He" 得到 "llo", 但查询 "ll" 找不到结果,
// 除非 "llo" 本身也作为词插入过.
//
// Trie 不是并发安全的, 并发访问需要调用方自行加锁.
package suffixtrie
