package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appitem "github.com/xiebiao/jpashop/internal/application/item"
	appmember "github.com/xiebiao/jpashop/internal/application/member"
	apporder "github.com/xiebiao/jpashop/internal/application/order"
	"github.com/xiebiao/jpashop/internal/domain/item"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/order"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql/mysqltest"
	"github.com/xiebiao/jpashop/internal/interface/http/handler"
	"github.com/xiebiao/jpashop/internal/interface/http/router"
	"github.com/xiebiao/jpashop/pkg/metrics"
)

// envelope 统一响应，data保留原始JSON便于按版本比较
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	tx := mysql.NewTxManager(db)
	members := mysql.NewMemberRepository(db)
	items := mysql.NewItemRepository(db)
	orders := mysql.NewOrderRepository(db)
	queries := mysql.NewOrderQueryRepository(db)

	memberService := member.NewService(members, tx)
	itemService := item.NewService(items, tx)
	orderService := order.NewService(orders, members, items, tx)

	return router.NewRouter(gin.TestMode, router.Handlers{
		Member: handler.NewMemberHandler(
			appmember.NewJoinMemberUseCase(memberService),
			appmember.NewListMembersUseCase(memberService),
			appmember.NewUpdateMemberUseCase(memberService),
		),
		Item: handler.NewItemHandler(
			appitem.NewSaveItemUseCase(itemService),
			appitem.NewUpdateItemUseCase(itemService),
			appitem.NewListItemsUseCase(itemService),
		),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(orderService),
			apporder.NewCancelOrderUseCase(orderService),
			apporder.NewSearchOrdersUseCase(orderService, orders, members, items),
		),
		OrderQuery: handler.NewOrderQueryHandler(
			apporder.NewSimpleOrderQueryUseCase(orders, queries, members, items),
			apporder.NewOrderQueryUseCase(orders, queries, members, items,
				apporder.PageLimits{Default: 100, Max: 1000}),
		),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// querySum 读取某个路由累计的查询条数
func querySum(t *testing.T, path string) float64 {
	t.Helper()
	var m dto.Metric
	observer := metrics.DBQueriesPerRequest.WithLabelValues(path)
	require.NoError(t, observer.(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleSum()
}

func TestPing(t *testing.T) {
	r := newTestRouter(t, mysqltest.NewDB(t))

	w, resp := do(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, mysqltest.NewDB(t))
	do(t, r, http.MethodGet, "/ping", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMembers(t *testing.T) {
	r := newTestRouter(t, mysqltest.NewDB(t))

	t.Run("v1直接绑定实体", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/api/v1/members", map[string]interface{}{
			"name":    "userA",
			"address": map[string]string{"city": "Seoul", "street": "1", "zipcode": "1111"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1}`, string(resp.Data))
	})

	t.Run("v2重复会员名返回409", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/api/v2/members", map[string]interface{}{"name": "userA"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 40901, resp.Code)
	})

	t.Run("v2缺少name返回参数错误", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/api/v2/members", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 40011, resp.Code)
	})

	t.Run("v2注册并修改", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/api/v2/members", map[string]interface{}{"name": "userB"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":2}`, string(resp.Data))

		w, resp = do(t, r, http.MethodPut, "/api/v2/members/2", map[string]interface{}{"name": "userC"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":2,"name":"userC"}`, string(resp.Data))
	})

	t.Run("修改不存在的会员返回404", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPut, "/api/v2/members/99", map[string]interface{}{"name": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("v2列表带count", func(t *testing.T) {
		w, resp := do(t, r, http.MethodGet, "/api/v2/members", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"count":2,"data":[{"name":"userA"},{"name":"userC"}]}`, string(resp.Data))
	})

	t.Run("v1列表返回实体", func(t *testing.T) {
		w, resp := do(t, r, http.MethodGet, "/api/v1/members", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var list []map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 2)
		// 实体没有json tag，字段名原样输出
		assert.Contains(t, list[0], "Address")
		assert.Equal(t, "userA", list[0]["Name"])
	})
}

func TestItems(t *testing.T) {
	r := newTestRouter(t, mysqltest.NewDB(t))

	w, resp := do(t, r, http.MethodPost, "/api/v2/items", map[string]interface{}{
		"name": "JPA1 BOOK", "price": 10000, "stockQuantity": 100, "author": "kim", "isbn": "978-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, string(resp.Data))

	w, resp = do(t, r, http.MethodPut, "/api/v2/items/1", map[string]interface{}{
		"name": "JPA1 BOOK 2nd", "price": 12000, "stockQuantity": 50,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":1,"name":"JPA1 BOOK 2nd","price":12000,"stockQuantity":50,"author":"kim","isbn":"978-1"}`,
		string(resp.Data))

	w, _ = do(t, r, http.MethodGet, "/api/v2/items/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = do(t, r, http.MethodGet, "/api/v2/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"count":1`)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"不存在的商品", http.MethodGet, "/api/v2/items/99", nil, http.StatusNotFound},
		{"非法ID", http.MethodGet, "/api/v2/items/abc", nil, http.StatusBadRequest},
		{"负价格", http.MethodPost, "/api/v2/items", map[string]interface{}{"name": "x", "price": -1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestOrderQueryVersions(t *testing.T) {
	db := mysqltest.NewDB(t)
	mysqltest.Seed(t, db)
	r := newTestRouter(t, db)

	t.Run("简单订单v2到v4结果相同", func(t *testing.T) {
		_, base := do(t, r, http.MethodGet, "/api/v2/simple-orders", nil)
		for _, path := range []string{"/api/v3/simple-orders", "/api/v4/simple-orders"} {
			w, resp := do(t, r, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code, path)
			assert.JSONEq(t, string(base.Data), string(resp.Data), path)
		}
	})

	t.Run("订单v2到v6结果相同", func(t *testing.T) {
		_, base := do(t, r, http.MethodGet, "/api/v2/orders", nil)
		for _, path := range []string{
			"/api/v3/orders", "/api/v3.1/orders", "/api/v4/orders", "/api/v5/orders", "/api/v6/orders",
		} {
			w, resp := do(t, r, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code, path)
			assert.JSONEq(t, string(base.Data), string(resp.Data), path)
		}
	})

	t.Run("v1返回实体", func(t *testing.T) {
		for _, path := range []string{"/api/v1/simple-orders", "/api/v1/orders"} {
			w, resp := do(t, r, http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, w.Code, path)
			var list []map[string]interface{}
			require.NoError(t, json.Unmarshal(resp.Data, &list))
			assert.Len(t, list, 2, path)
		}
	})

	t.Run("v3.1分页", func(t *testing.T) {
		w, resp := do(t, r, http.MethodGet, "/api/v3.1/orders?offset=1&limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list []apporder.OrderDto
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, "userB", list[0].Name)
	})

	t.Run("v3.1非法分页参数", func(t *testing.T) {
		for _, query := range []string{"offset=-1", "limit=0", "limit=1001"} {
			w, resp := do(t, r, http.MethodGet, "/api/v3.1/orders?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, query)
			assert.Equal(t, 40011, resp.Code, query)
		}
	})
}

func TestQueriesPerRequest(t *testing.T) {
	db := mysqltest.NewDB(t)
	mysqltest.Seed(t, db)
	r := newTestRouter(t, db)

	tests := []struct {
		path    string
		queries float64
	}{
		{"/api/v1/orders", 11},
		{"/api/v3/orders", 1},
		{"/api/v3.1/orders", 3},
		{"/api/v5/orders", 2},
		{"/api/v6/orders", 1},
		{"/api/v2/simple-orders", 5},
		{"/api/v4/simple-orders", 1},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			before := querySum(t, tt.path)
			w, _ := do(t, r, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.queries, querySum(t, tt.path)-before)
		})
	}
}

func TestOrderCommands(t *testing.T) {
	db := mysqltest.NewDB(t)
	f := mysqltest.Seed(t, db)
	r := newTestRouter(t, db)

	var orderID uint
	t.Run("下单", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/api/v2/orders", map[string]interface{}{
			"memberId": f.UserA.ID, "itemId": f.Books[0].ID, "count": 2,
		})
		require.Equal(t, http.StatusOK, w.Code)
		var id struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &id))
		orderID = id.ID
		assert.NotZero(t, orderID)
	})

	t.Run("库存不足", func(t *testing.T) {
		w, resp := do(t, r, http.MethodPost, "/api/v2/orders", map[string]interface{}{
			"memberId": f.UserA.ID, "itemId": f.Books[0].ID, "count": 1000,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 40001, resp.Code)
	})

	t.Run("数量为0", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v2/orders", map[string]interface{}{
			"memberId": f.UserA.ID, "itemId": f.Books[0].ID, "count": 0,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("取消订单", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v2/orders/"+jsonID(orderID)+"/cancel", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, resp := do(t, r, http.MethodPost, "/api/v2/orders/"+jsonID(orderID)+"/cancel", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotZero(t, resp.Code)
	})

	t.Run("取消不存在的订单", func(t *testing.T) {
		w, _ := do(t, r, http.MethodPost, "/api/v2/orders/999/cancel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("检索", func(t *testing.T) {
		tests := []struct {
			query string
			count int
			code  int
		}{
			{"", 3, http.StatusOK},
			{"?memberName=userA", 2, http.StatusOK},
			{"?orderStatus=CANCEL", 1, http.StatusOK},
			{"?memberName=userB&orderStatus=CANCEL", 0, http.StatusOK},
			{"?orderStatus=SHIPPED", 0, http.StatusBadRequest},
		}
		for _, tt := range tests {
			w, resp := do(t, r, http.MethodGet, "/api/v2/orders/search"+tt.query, nil)
			require.Equal(t, tt.code, w.Code, tt.query)
			if tt.code != http.StatusOK {
				continue
			}
			var list []apporder.SimpleOrderDto
			require.NoError(t, json.Unmarshal(resp.Data, &list))
			assert.Len(t, list, tt.count, tt.query)
		}
	})
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, mysqltest.NewDB(t))
	w, _ := do(t, r, http.MethodGet, "/api/v9/orders", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonID(id uint) string {
	data, _ := json.Marshal(id)
	return string(data)
}
