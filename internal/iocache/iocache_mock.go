package iocache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRosterStore implements the StoreManager interface.
func (m *MockStoreManager) GetRosterStore() contract.RosterStore {
	store, _ := m.Called().Get(0).(contract.RosterStore)
	return store
}

// GetBaselineStore implements the StoreManager interface.
func (m *MockStoreManager) GetBaselineStore() contract.BaselineStore {
	store, _ := m.Called().Get(0).(contract.BaselineStore)
	return store
}

// GetMatchSink implements the StoreManager interface.
func (m *MockStoreManager) GetMatchSink() contract.MatchSink {
	sink, _ := m.Called().Get(0).(contract.MatchSink)
	return sink
}

// GetDocumentCache implements the StoreManager interface.
func (m *MockStoreManager) GetDocumentCache() contract.DocumentCache {
	cache, _ := m.Called().Get(0).(contract.DocumentCache)
	return cache
}

// MockMatchSink is a mock implementation of MatchSink for testing.
type MockMatchSink struct {
	mock.Mock
}

var _ contract.MatchSink = &MockMatchSink{} // Compile-time check

// BeginImport implements the MatchSink interface.
func (m *MockMatchSink) BeginImport(ctx context.Context, sourcePath string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(ctx, sourcePath, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordMatch implements the MatchSink interface.
func (m *MockMatchSink) RecordMatch(ctx context.Context, importID int64, payload *schema.MatchPayload) error {
	return m.Called(ctx, importID, payload).Error(0)
}

// EndImport implements the MatchSink interface.
func (m *MockMatchSink) EndImport(ctx context.Context, importID int64, endTime time.Time) error {
	return m.Called(ctx, importID, endTime).Error(0)
}

// GetSourcePaths implements the MatchSink interface.
func (m *MockMatchSink) GetSourcePaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	paths, _ := args.Get(0).([]string)
	return paths, args.Error(1)
}

// GetAllImports implements the MatchSink interface.
func (m *MockMatchSink) GetAllImports() ([]schema.ImportRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ImportRunRecord)
	return records, args.Error(1)
}

// GetAllPlayerGrades implements the MatchSink interface.
func (m *MockMatchSink) GetAllPlayerGrades() ([]schema.PlayerGradeRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.PlayerGradeRecord)
	return records, args.Error(1)
}

// GetStatus implements the MatchSink interface.
func (m *MockMatchSink) GetStatus() (schema.MatchSinkStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.MatchSinkStatus), args.Error(1)
}

// Close implements the MatchSink interface.
func (m *MockMatchSink) Close() error {
	return m.Called().Error(0)
}

// MockDocumentCache is a mock implementation of DocumentCache for testing.
type MockDocumentCache struct {
	mock.Mock
}

var _ contract.DocumentCache = &MockDocumentCache{} // Compile-time check

// Get implements the DocumentCache interface.
func (m *MockDocumentCache) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the DocumentCache interface.
func (m *MockDocumentCache) Set(key string, data []byte, version int, ts int64) error {
	return m.Called(key, data, version, ts).Error(0)
}

// Close implements the DocumentCache interface.
func (m *MockDocumentCache) Close() error {
	return m.Called().Error(0)
}
