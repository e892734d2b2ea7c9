package queries_test

import (
	"context"
	"testing"
	"time"

	"mes/internal/adapters/out/postgres/orderrepo"
	"mes/internal/core/application/usecases/queries"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.RequirementDTO{},
		&orderrepo.MachineClaimDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_MixedStatuses_ReturnsOnlyUnfinished() {
	ctx := context.Background()

	pending := suite.newOrder(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	processing := suite.newOrder(time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))
	suite.claimAndTransition(processing, order.Processing)
	completed := suite.newOrder(time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC))
	suite.claimAndTransition(completed, order.Completed)

	for _, o := range []*order.Order{pending, processing, completed} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.True(result[0].ID.IsEqual(pending.ID()))
	suite.Equal(order.Pending, result[0].Status)
	suite.True(result[0].ProductID.IsEqual(pending.ProductID()))
	suite.Equal(pending.Quantity(), result[0].Quantity)
	suite.Nil(result[0].MachineID)

	suite.True(result[1].ID.IsEqual(processing.ID()))
	suite.Equal(order.Processing, result[1].Status)
	suite.Require().NotNil(result[1].MachineID)
	suite.True(result[1].MachineID.IsEqual(*processing.MachineID()))
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetActiveOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetActiveOrdersQuery constructor")
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	ctx := context.Background()
	for range 20 {
		suite.Require().NoError(suite.orderRepo.Add(ctx, suite.newOrder(time.Now().UTC())))
	}

	query := queries.NewGetActiveOrdersQuery()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	result, err := suite.handler.Handle(cancelled, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) newOrder(orderDate time.Time) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 5, orderDate)
	suite.Require().NoError(err)
	return o
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) claimAndTransition(o *order.Order, target order.Status) {
	err := o.ClaimMachine(kernel.NewUUID(), kernel.NewUUID(), o.OrderDate())
	suite.Require().NoError(err)

	_, err = o.TransitionTo(target)
	suite.Require().NoError(err)

	if target == order.Completed {
		_, err = o.CloseClaim(o.OrderDate().Add(time.Hour))
		suite.Require().NoError(err)
	}
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
