package orderrepo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/robotrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/robot"
	"dispatch/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// nopTracker satisfies the repository's tracker dependency in tests.
type nopTracker struct{}

func (nopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderRepositoryIntegrationTestSuite exercises the order repository,
// including its conditional writes, against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	dsn       string
	repo      *orderrepo.GormOrderRepository
	robots    *robotrepo.GormRobotRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &robotrepo.RobotDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, nopTracker{})
	suite.robots = robotrepo.NewGormRobotRepository(db, nopTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, robots").Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	testOrder := suite.newOrder()

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(testOrder.IsEqual(retrieved))
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(testOrder.StudentID(), retrieved.StudentID())
	suite.Equal("documents", retrieved.Package().Type())
	suite.Equal("1kg", retrieved.Package().Weight())
	suite.Equal("Library", retrieved.PickupBuilding())
	suite.Equal("front desk", retrieved.PickupInstructions())
	suite.Equal("Dorm A", retrieved.DeliveryBuilding())
	suite.Equal("312", retrieved.DeliveryRoom())
	suite.Equal(testOrder.HandoffPayload(), retrieved.HandoffPayload())
	suite.Equal(testOrder.HandoffSignature(), retrieved.HandoffSignature())
	suite.True(retrieved.HandoffValid())
	suite.Nil(retrieved.ScannedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetNotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByIDAndStudent() {
	ctx := context.Background()
	testOrder := suite.newOrder()

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.GetByIDAndStudent(ctx, testOrder.ID(), testOrder.StudentID())
	suite.Require().NoError(err)
	suite.True(testOrder.IsEqual(retrieved))

	// A different student must not see the order.
	_, err = suite.repo.GetByIDAndStudent(ctx, testOrder.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_WinsOnMatchingRow() {
	ctx := context.Background()
	testOrder := suite.newOrder()
	robotID := kernel.NewUUID()

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = testOrder.Assign(robotID, nil)
	suite.Require().NoError(err)

	committed, err := suite.repo.UpdateIfStatus(ctx, testOrder, order.Pending)
	suite.Require().NoError(err)
	suite.True(committed)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, retrieved.Status())
	suite.Require().NotNil(retrieved.Robot())
	suite.True(robotID.IsEqual(*retrieved.Robot()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_LosesOnMovedRow() {
	ctx := context.Background()
	testOrder := suite.newOrder()

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// First writer moves the order off Pending.
	winner, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = winner.Assign(kernel.NewUUID(), nil)
	suite.Require().NoError(err)
	committed, err := suite.repo.UpdateIfStatus(ctx, winner, order.Pending)
	suite.Require().NoError(err)
	suite.True(committed)

	// Second writer still holds the Pending snapshot and must lose.
	err = testOrder.Assign(kernel.NewUUID(), nil)
	suite.Require().NoError(err)
	committed, err = suite.repo.UpdateIfStatus(ctx, testOrder, order.Pending)
	suite.Require().NoError(err)
	suite.False(committed, "Stale writer must not overwrite the row")

	// The winner's robot assignment survives.
	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(winner.Robot().IsEqual(*retrieved.Robot()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestConsumeHandoff_OnlyOnce() {
	ctx := context.Background()
	testOrder := suite.newOrder()
	suite.advanceToDelivered(testOrder, kernel.NewUUID())

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	first, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	err = first.ConfirmPickup(time.Now().UTC())
	suite.Require().NoError(err)

	committed, err := suite.repo.ConsumeHandoff(ctx, first)
	suite.Require().NoError(err)
	suite.True(committed, "First scan should consume the token")

	// A concurrent scan loaded the order before the first one committed.
	second, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.False(second.HandoffValid())

	committed, err = suite.repo.ConsumeHandoff(ctx, first)
	suite.Require().NoError(err)
	suite.False(committed, "Second scan must observe the consumed token")
}

// TestConsumeHandoff_RawRow checks the committed row at the SQL level: the
// token must be unredeemable and the scan time recorded.
func (suite *OrderRepositoryIntegrationTestSuite) TestConsumeHandoff_RawRow() {
	ctx := context.Background()
	testOrder := suite.newOrder()
	suite.advanceToDelivered(testOrder, kernel.NewUUID())

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = testOrder.ConfirmPickup(time.Now().UTC())
	suite.Require().NoError(err)
	committed, err := suite.repo.ConsumeHandoff(ctx, testOrder)
	suite.Require().NoError(err)
	suite.True(committed)

	rawDB, err := sql.Open("postgres", suite.dsn)
	suite.Require().NoError(err)
	defer rawDB.Close()

	var status string
	var handoffValid bool
	var scannedAt *time.Time
	err = rawDB.QueryRowContext(ctx,
		"SELECT status, handoff_valid, scanned_at FROM orders WHERE id = $1",
		testOrder.ID().String(),
	).Scan(&status, &handoffValid, &scannedAt)
	suite.Require().NoError(err)

	suite.Equal("PICKED_UP", status)
	suite.False(handoffValid)
	suite.NotNil(scannedAt)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveByRobot() {
	ctx := context.Background()
	robotID := kernel.NewUUID()

	assigned := suite.newOrder()
	err := assigned.Assign(robotID, nil)
	suite.Require().NoError(err)

	pickedUp := suite.newOrder()
	suite.advanceToDelivered(pickedUp, robotID)
	err = pickedUp.ConfirmPickup(time.Now().UTC())
	suite.Require().NoError(err)

	otherRobot := suite.newOrder()
	err = otherRobot.Assign(kernel.NewUUID(), nil)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{assigned, pickedUp, otherRobot} {
		err = suite.repo.Add(ctx, o)
		suite.Require().NoError(err)
	}

	cargo, err := suite.repo.GetActiveByRobot(ctx, robotID)
	suite.Require().NoError(err)
	suite.Require().Len(cargo, 1)
	suite.True(assigned.IsEqual(cargo[0]))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive() {
	ctx := context.Background()

	pending := suite.newOrder()
	cancelled := suite.newOrder()
	suite.advanceToDelivered(cancelled, kernel.NewUUID())
	err := cancelled.Cancel()
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, pending)
	suite.Require().NoError(err)
	err = suite.repo.Add(ctx, cancelled)
	suite.Require().NoError(err)

	active, err := suite.repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.True(pending.IsEqual(active[0]))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetDeliveredWaitingSince() {
	ctx := context.Background()
	now := time.Now().UTC()

	// Robot stuck waiting since 15 minutes ago.
	staleRobot := suite.newWaitingRobot("Stale", now.Add(-15*time.Minute))
	staleOrder := suite.newOrder()
	suite.advanceToDelivered(staleOrder, staleRobot.ID())

	// Robot that just arrived.
	freshRobot := suite.newWaitingRobot("Fresh", now.Add(-time.Minute))
	freshOrder := suite.newOrder()
	suite.advanceToDelivered(freshOrder, freshRobot.ID())

	err := suite.repo.Add(ctx, staleOrder)
	suite.Require().NoError(err)
	err = suite.repo.Add(ctx, freshOrder)
	suite.Require().NoError(err)

	expired, err := suite.repo.GetDeliveredWaitingSince(ctx, now.Add(-10*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(expired, 1)
	suite.True(staleOrder.IsEqual(expired[0]))
}

// newOrder creates a pending order with an armed handoff token.
func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	pkg, err := order.NewPackageInfo("documents", "1kg", false, "course materials")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		pkg,
		"Library", "front desk",
		"Dorm A", "312",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = testOrder.AttachHandoff(`{"order_id":"test"}`, "cafe")
	suite.Require().NoError(err)

	return testOrder
}

// advanceToDelivered walks the order to Delivered on the given robot.
func (suite *OrderRepositoryIntegrationTestSuite) advanceToDelivered(o *order.Order, robotID kernel.UUID) {
	suite.Require().NoError(o.Assign(robotID, nil))
	suite.Require().NoError(o.StartDelivery())
	suite.Require().NoError(o.MarkDelivered())
}

// newWaitingRobot persists a robot whose pickup-wait window opened at the
// given time.
func (suite *OrderRepositoryIntegrationTestSuite) newWaitingRobot(name string, waitingSince time.Time) *robot.Robot {
	ctx := context.Background()

	testRobot, err := robot.NewRobot(kernel.NewUUID(), name)
	suite.Require().NoError(err)
	testRobot.StartPickupWait(waitingSince)

	err = suite.robots.Add(ctx, testRobot)
	suite.Require().NoError(err)

	return testRobot
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
