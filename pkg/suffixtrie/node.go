package suffixtrie

// Node 前缀树节点
type Node struct {
	children map[string]*Node // 子节点，使用完整字符作为键
	terminal bool             // 是否有后缀在此结束
}

// NewNode 创建一个新的前缀树节点
func NewNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Terminal 是否有后缀在此节点结束
func (n *Node) Terminal() bool { return n.terminal }

// Child 获取字符对应的子节点
func (n *Node) Child(char string) (*Node, bool) {
	child, ok := n.children[char]
	return child, ok
}

// AddSuffix 插入一条后缀
// 后缀为空时标记当前节点为结束节点, 否则按首字符查找或创建子节点后递归插入剩余部分
func (n *Node) AddSuffix(suffix string) {
	char, rest, ok := firstChar(suffix)
	if !ok {
		n.terminal = true
		return
	}
	child, exists := n.children[char]
	if !exists {
		child = NewNode()
		n.children[char] = child
	}
	child.AddSuffix(rest)
}

// FindByPrefix 沿prefix逐字符下降, 找到后返回该位置以下所有后缀的剩余部分
// 任意一步缺少对应子节点时返回 nil, false
func (n *Node) FindByPrefix(prefix string) ([]string, bool) {
	char, rest, ok := firstChar(prefix)
	if !ok {
		return n.collectSuffixes("", nil), true
	}
	child, exists := n.children[char]
	if !exists {
		return nil, false
	}
	return child.FindByPrefix(rest)
}

// Contains 判断word是否恰好在某个结束节点结束
func (n *Node) Contains(word string) bool {
	node := n
	for _, char := range SplitString(word) {
		child, ok := node.children[char]
		if !ok {
			return false
		}
		node = child
	}
	return node.terminal
}

// collectSuffixes 深度优先收集当前节点以下所有结束路径, path为到达当前节点已经过的字符
func (n *Node) collectSuffixes(path string, out []string) []string {
	if n.terminal {
		out = append(out, path)
	}
	for char, child := range n.children {
		out = child.collectSuffixes(path+char, out)
	}
	return out
}
