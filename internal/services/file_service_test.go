package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/subscription"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// FileServiceTestSuite defines the test suite for FileService
type FileServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	service     *FileService
	taskService *TaskService
}

// SetupTest runs before each test
func (suite *FileServiceTestSuite) SetupTest() {
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

	suite.Require().NoError(database.SeedSafeFiles(suite.db))

	hub := subscription.NewHub()
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.taskService = NewTaskService(taskRepo, hub)
	suite.service = NewFileService(repository.NewFileRepository(suite.db), taskRepo, hub)
}

// TearDownTest runs after each test
func (suite *FileServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *FileServiceTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		DisplayName:  username,
	}
	suite.db.Create(user)
	return user
}

func (suite *FileServiceTestSuite) reloadTask(number uint64) models.Task {
	var task models.Task
	suite.Require().NoError(suite.db.Where("number = ?", number).First(&task).Error)
	return task
}

func (suite *FileServiceTestSuite) TestSaveFile_AllowedTypeBumpsCount() {
	alice := suite.createTestUser("alice")
	task, err := suite.taskService.CreateTask(alice, CreateTaskInput{Title: "with attachment"})
	suite.Require().NoError(err)

	file, err := suite.service.SaveFile(alice, task.Number, SaveFileInput{
		Name:        "diagram.png",
		ContentType: "image/png",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(file.StorageID)

	reloaded := suite.reloadTask(task.Number)
	suite.Equal(int64(1), reloaded.FileCount)
}

func (suite *FileServiceTestSuite) TestSaveFile_DisallowedType() {
	alice := suite.createTestUser("alice")
	task, err := suite.taskService.CreateTask(alice, CreateTaskInput{Title: "no executables"})
	suite.Require().NoError(err)

	_, err = suite.service.SaveFile(alice, task.Number, SaveFileInput{
		Name:        "payload.exe",
		ContentType: "application/x-msdownload",
	})
	suite.ErrorIs(err, ErrFileTypeNotAllowed)

	reloaded := suite.reloadTask(task.Number)
	suite.Equal(int64(0), reloaded.FileCount)
}

func (suite *FileServiceTestSuite) TestSaveFile_RequiresPrincipal() {
	alice := suite.createTestUser("alice")
	task, err := suite.taskService.CreateTask(alice, CreateTaskInput{Title: "auth only"})
	suite.Require().NoError(err)

	_, err = suite.service.SaveFile(nil, task.Number, SaveFileInput{
		Name:        "x.png",
		ContentType: "image/png",
	})
	suite.ErrorIs(err, ErrNotAuthenticated)
}

func (suite *FileServiceTestSuite) TestDeleteFile_UploaderDecrementsCount() {
	alice := suite.createTestUser("alice")
	task, err := suite.taskService.CreateTask(alice, CreateTaskInput{Title: "cleanup"})
	suite.Require().NoError(err)

	file, err := suite.service.SaveFile(alice, task.Number, SaveFileInput{
		Name:        "notes.txt",
		ContentType: "text/plain",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteFile(alice, task.Number, file.ID))

	reloaded := suite.reloadTask(task.Number)
	suite.Equal(int64(0), reloaded.FileCount)
}

func (suite *FileServiceTestSuite) TestDeleteFile_StrangerForbidden() {
	alice := suite.createTestUser("alice")
	mallory := suite.createTestUser("mallory")
	task, err := suite.taskService.CreateTask(alice, CreateTaskInput{Title: "protected", OwnerID: &alice.ID})
	suite.Require().NoError(err)

	file, err := suite.service.SaveFile(alice, task.Number, SaveFileInput{
		Name:        "report.pdf",
		ContentType: "application/pdf",
	})
	suite.Require().NoError(err)

	err = suite.service.DeleteFile(mallory, task.Number, file.ID)
	suite.ErrorIs(err, ErrNotFileOwner)

	reloaded := suite.reloadTask(task.Number)
	suite.Equal(int64(1), reloaded.FileCount)
}

func (suite *FileServiceTestSuite) TestSafeFiles_ReturnsAllowList() {
	safeFiles, err := suite.service.SafeFiles()
	suite.Require().NoError(err)
	suite.NotEmpty(safeFiles)

	types := make([]string, len(safeFiles))
	for i, sf := range safeFiles {
		types[i] = sf.ContentType
	}
	suite.Contains(types, "image/png")
	suite.Contains(types, "application/pdf")
}

func TestFileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FileServiceTestSuite))
}
