package badger

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerTX 事务函数
type BadgerTX func(tx *badger.Txn) error

// TxSet 事务设置参数操作
func (e *Engine) TxSet(tx BadgerTX) error {
	return e.db.Update(tx)
}

// TxGet 事务获取参数操作
func (e *Engine) TxGet(tx BadgerTX) error {
	return e.db.View(tx)
}

// Set 设置参数
func (e *Engine) Set(key, value []byte) error {
	return e.TxSet(func(tx *badger.Txn) error {
		return tx.Set(key, value)
	})
}

// IterFunc 迭代回调, key和value在回调返回后失效
type IterFunc func(key, value []byte) error

// Iterate 按key升序遍历指定前缀下的所有键值, prefix为nil时遍历全部
// 回调返回错误时停止遍历并返回该错误
func (e *Engine) Iterate(prefix []byte, fn IterFunc) error {
	return e.TxGet(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				return fn(item.Key(), val)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Backup 备份数据库到文件
func (e *Engine) Backup(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if _, err = e.db.Backup(f, 0); err != nil {
		f.Close()
		return fmt.Errorf("backup to %s: %w", filename, err)
	}
	return f.Close()
}

// Load 从备份文件加载数据
func (e *Engine) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := e.db.Load(f, 256); err != nil {
		return fmt.Errorf("load from %s: %w", filename, err)
	}
	return nil
}
