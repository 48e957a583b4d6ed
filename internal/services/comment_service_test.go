package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/subscription"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// CommentServiceTestSuite defines the test suite for CommentService
type CommentServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	service     *CommentService
	taskService *TaskService
}

// SetupTest runs before each test
func (suite *CommentServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Comment{},
		&models.TaskFile{},
		&models.SafeFile{},
	)
	suite.Require().NoError(err)

	hub := subscription.NewHub()
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.taskService = NewTaskService(taskRepo, hub)
	suite.service = NewCommentService(repository.NewCommentRepository(suite.db), taskRepo, hub)
}

// TearDownTest runs after each test
func (suite *CommentServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CommentServiceTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		DisplayName:  username,
	}
	suite.db.Create(user)
	return user
}

func (suite *CommentServiceTestSuite) createTestTask(creator *models.User, title string) *models.Task {
	task, err := suite.taskService.CreateTask(creator, CreateTaskInput{Title: title})
	suite.Require().NoError(err)
	return task
}

func (suite *CommentServiceTestSuite) TestAppend_BumpsCountByExactlyOne() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask(alice, "discuss")

	comment, err := suite.service.Append(alice, task.Number, "first!")
	suite.Require().NoError(err)
	suite.Equal("first!", comment.Body)
	suite.Equal("alice", comment.AuthorName)

	// Count and comment row move together
	var reloaded models.Task
	suite.Require().NoError(suite.db.Where("number = ?", task.Number).First(&reloaded).Error)
	suite.Equal(int64(1), reloaded.CommentCount)

	var commentRows int64
	suite.db.Model(&models.Comment{}).Where("task_id = ?", reloaded.ID).Count(&commentRows)
	suite.Equal(reloaded.CommentCount, commentRows)

	_, err = suite.service.Append(alice, task.Number, "second!")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Where("number = ?", task.Number).First(&reloaded).Error)
	suite.Equal(int64(2), reloaded.CommentCount)
}

func (suite *CommentServiceTestSuite) TestAppend_RejectsAnonymous() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask(alice, "discuss")

	_, err := suite.service.Append(nil, task.Number, "drive-by")
	suite.ErrorIs(err, ErrNotAuthenticated)

	var count int64
	suite.db.Model(&models.Comment{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *CommentServiceTestSuite) TestAppend_RejectsEmptyBody() {
	alice := suite.createTestUser("alice")
	task := suite.createTestTask(alice, "discuss")

	_, err := suite.service.Append(alice, task.Number, "   ")
	suite.ErrorIs(err, ErrCommentBodyEmpty)
}

func (suite *CommentServiceTestSuite) TestAppend_UnknownTask() {
	alice := suite.createTestUser("alice")

	_, err := suite.service.Append(alice, 404, "hello?")
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *CommentServiceTestSuite) TestList_OrderedByCreationTime() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask(alice, "discuss")

	for _, body := range []string{"one", "two", "three"} {
		_, err := suite.service.Append(bob, task.Number, body)
		suite.Require().NoError(err)
	}

	comments, err := suite.service.List(task.Number, nil)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 3)
	suite.Equal("one", comments[0].Body)
	suite.Equal("two", comments[1].Body)
	suite.Equal("three", comments[2].Body)
}

func (suite *CommentServiceTestSuite) TestList_PrivateTaskHidden() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")

	task, err := suite.taskService.CreateTask(alice, CreateTaskInput{
		Title:      "secret",
		Visibility: models.VisibilityPrivate,
		OwnerID:    &alice.ID,
	})
	suite.Require().NoError(err)

	_, err = suite.service.List(task.Number, &bob.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.service.Append(bob, task.Number, "can I see this?")
	suite.ErrorIs(err, ErrTaskNotFound)
}

func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
