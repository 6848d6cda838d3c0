//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：
//
//	*gin.Engine → router.Handlers → *handler.XxxHandler → UseCase → 领域服务 → 仓储 → *gorm.DB / *redis.Client

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appitem "github.com/xiebiao/jpashop/internal/application/item"
	appmember "github.com/xiebiao/jpashop/internal/application/member"
	apporder "github.com/xiebiao/jpashop/internal/application/order"
	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/infrastructure/config"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/interface/http/handler"
	"github.com/xiebiao/jpashop/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、商品缓存
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideItemCache,
)

// repositorySet 仓储和事务管理器
var repositorySet = wire.NewSet(
	mysql.NewMemberRepository,
	mysql.NewItemRepository,
	mysql.NewOrderRepository,
	mysql.NewOrderQueryRepository,
	mysql.NewTxManager,
	wire.Bind(new(shared.Transactor), new(*mysql.TxManager)),
)

// domainSet 领域服务
// 商品服务与订单服务对缓存的用法不同，由自定义Provider装配
var domainSet = wire.NewSet(
	member.NewService,
	provideItemService,
	provideOrderService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appmember.NewJoinMemberUseCase,
	appmember.NewListMembersUseCase,
	appmember.NewUpdateMemberUseCase,
	appitem.NewSaveItemUseCase,
	appitem.NewUpdateItemUseCase,
	appitem.NewListItemsUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewSearchOrdersUseCase,
	apporder.NewSimpleOrderQueryUseCase,
	apporder.NewOrderQueryUseCase,
	providePageLimits,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewMemberHandler,
	handler.NewItemHandler,
	handler.NewOrderHandler,
	handler.NewOrderQueryHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 组装整个应用，cleanup依次关闭Redis和数据库连接
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil, nil
}
