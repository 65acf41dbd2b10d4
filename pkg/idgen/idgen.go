package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

// 雪花id生成器，订单号和成交号统一用这里生成
// id按时间递增，价格相同时可以直接按id做先来先得

var (
	node *snowflake.Node
	once sync.Once
)

// Init 初始化生成器，nodeId在多实例部署时需要互不相同
func Init(nodeId int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeId)
	})
	return err
}

// NextId 生成一个新id，未初始化时默认使用节点1
func NextId() int64 {
	if node == nil {
		_ = Init(1)
	}
	return node.Generate().Int64()
}
