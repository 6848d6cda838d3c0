package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/jpashop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. SQL日志交给zap，开发环境逐条打印（观察N+1最直接的方式）
// 4. 注册查询计数回调，统计每个请求执行了多少条SELECT
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := Open(mysql.Open(cfg.Database.DSN()), NewGormLogger(zap.L(), logLevel, cfg.Database.SlowThreshold))
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// Open 打开连接并注册回调
// 与驱动无关：生产环境传mysql.Open，测试传sqlite.Open
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormLogger,
		NowFunc: time.Now,
	})
	if err != nil {
		return nil, err
	}

	if err := RegisterQueryCounter(db); err != nil {
		return nil, fmt.Errorf("注册查询计数回调失败: %w", err)
	}
	return db, nil
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&MemberModel{},
		&ItemModel{},
		&DeliveryModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

// AddressModel 地址（嵌入members和deliveries表）
type AddressModel struct {
	City    string `gorm:"size:100;comment:城市"`
	Street  string `gorm:"size:200;comment:街道"`
	Zipcode string `gorm:"size:20;comment:邮编"`
}

// MemberModel GORM会员模型
// name只有普通索引：重名检查在应用层完成，不依赖唯一约束
type MemberModel struct {
	ID      uint         `gorm:"primaryKey"`
	Name    string       `gorm:"index;size:100;not null;comment:会员名"`
	Address AddressModel `gorm:"embedded"`
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// 商品类型（单表继承的区分列）
const dtypeBook = "B"

// ItemModel GORM商品模型
// 所有商品类型共用一张表，dtype区分类型，图书专有字段对其它类型为空
type ItemModel struct {
	ID            uint   `gorm:"primaryKey"`
	DType         string `gorm:"column:dtype;size:1;not null;default:B;comment:商品类型"`
	Name          string `gorm:"size:200;not null;comment:商品名"`
	Price         int    `gorm:"not null;comment:价格"`
	StockQuantity int    `gorm:"not null;default:0;comment:库存数量"`
	Author        string `gorm:"size:100;comment:作者(图书)"`
	ISBN          string `gorm:"column:isbn;size:20;comment:ISBN(图书)"`
}

// TableName 指定表名
func (ItemModel) TableName() string {
	return "items"
}

// DeliveryModel GORM配送模型
type DeliveryModel struct {
	ID      uint         `gorm:"primaryKey"`
	Address AddressModel `gorm:"embedded"`
	Status  string       `gorm:"size:10;not null;comment:配送状态(READY/COMP)"`
}

// TableName 指定表名
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// OrderModel GORM订单模型
// 教学要点:
// 1. Member、Delivery是belongs-to关联，Joins("Member")生成LEFT JOIN并一次填充
// 2. OrderItems是has-many关联，只在显式加载时填充
type OrderModel struct {
	ID         uint             `gorm:"primaryKey"`
	MemberID   uint             `gorm:"index;not null;comment:会员ID"`
	Member     MemberModel      `gorm:"foreignKey:MemberID"`
	DeliveryID uint             `gorm:"uniqueIndex;not null;comment:配送ID"`
	Delivery   DeliveryModel    `gorm:"foreignKey:DeliveryID"`
	OrderDate  time.Time        `gorm:"not null;comment:下单时间"`
	Status     string           `gorm:"index;size:10;not null;comment:订单状态(ORDERED/CANCEL)"`
	OrderItems []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// OrderPrice记录下单时的价格快照
type OrderItemModel struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uint      `gorm:"index;not null;comment:订单ID"`
	ItemID     uint      `gorm:"index;not null;comment:商品ID"`
	Item       ItemModel `gorm:"foreignKey:ItemID"`
	OrderPrice int       `gorm:"not null;comment:下单价格"`
	Count      int       `gorm:"not null;comment:购买数量"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
