package orderbook

import (
	"net/http"
	"sync"
	"time"

	"spotex/internal/model"
	"spotex/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Gateway 订单簿变更推送
// 客户端按symbol订阅，簿有变化时收到一条book changed事件，自己再来拉全量
// 实现了notifier.BookNotifier，直接挂在下单/撤单的通知链上

const sendBuffer = 64

type client struct {
	symbol string
	conn   *websocket.Conn
	send   chan []byte
}

type Gateway struct {
	mu      sync.RWMutex
	clients map[string]map[*client]struct{} // symbol -> 订阅者

	upgrader websocket.Upgrader
}

func NewGateway() *Gateway {
	return &Gateway{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS GET /api/v1/order/book/ws?symbol=BTC
func (g *Gateway) ServeWS(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.Writer.WriteHeader(http.StatusBadRequest)
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("orderbook ws upgrade error: %v", err)
		return
	}

	cl := &client{
		symbol: symbol,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}

	g.mu.Lock()
	if g.clients[symbol] == nil {
		g.clients[symbol] = make(map[*client]struct{})
	}
	g.clients[symbol][cl] = struct{}{}
	g.mu.Unlock()

	go g.writePump(cl)
	go g.readPump(cl)
}

// BookChanged 广播变更事件给该symbol的所有订阅者
func (g *Gateway) BookChanged(symbol string) {
	event := model.BookChangedEvent{
		Symbol:    symbol,
		Timestamp: time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Errorf("marshal book changed event error: %v", err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	for cl := range g.clients[symbol] {
		select {
		case cl.send <- payload:
		default:
			// 客户端消费太慢，丢掉这条，簿的全量还在HTTP接口上
		}
	}
}

func (g *Gateway) writePump(cl *client) {
	defer g.remove(cl)
	for payload := range cl.send {
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readPump 只用来感知客户端断开
func (g *Gateway) readPump(cl *client) {
	defer g.remove(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (g *Gateway) remove(cl *client) {
	g.mu.Lock()
	if subs, ok := g.clients[cl.symbol]; ok {
		if _, ok := subs[cl]; ok {
			delete(subs, cl)
			close(cl.send)
			if len(subs) == 0 {
				delete(g.clients, cl.symbol)
			}
		}
	}
	g.mu.Unlock()
	_ = cl.conn.Close()
}
