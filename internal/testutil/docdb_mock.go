// Package testutil provides mocks and helpers shared by package tests.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/docstore/docstore-service/internal/core/docdb"
)

// MockCollection is a mock implementation of docdb.Collection.
type MockCollection struct {
	mock.Mock
	CollectionName string
}

// Name returns the collection name.
func (m *MockCollection) Name() string {
	return m.CollectionName
}

// InsertOne inserts a single document.
func (m *MockCollection) InsertOne(ctx context.Context, document interface{}) (interface{}, error) {
	args := m.Called(ctx, document)
	return args.Get(0), args.Error(1)
}

// InsertMany inserts multiple documents.
func (m *MockCollection) InsertMany(ctx context.Context, documents []interface{}) ([]interface{}, error) {
	args := m.Called(ctx, documents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interface{}), args.Error(1)
}

// FindOne finds a single document.
func (m *MockCollection) FindOne(ctx context.Context, filter interface{}) docdb.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(docdb.SingleResult)
}

// Find finds multiple documents.
func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(docdb.Cursor), args.Error(1)
}

// FindOneAndUpdate updates the first match and returns it.
func (m *MockCollection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *docdb.FindOneAndUpdateOptions) docdb.SingleResult {
	args := m.Called(ctx, filter, update, opts)
	return args.Get(0).(docdb.SingleResult)
}

// FindOneAndDelete deletes the first match and returns it.
func (m *MockCollection) FindOneAndDelete(ctx context.Context, filter interface{}) docdb.SingleResult {
	args := m.Called(ctx, filter)
	return args.Get(0).(docdb.SingleResult)
}

// UpdateOne updates a single document.
func (m *MockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.UpdateResult), args.Error(1)
}

// UpdateMany updates multiple documents.
func (m *MockCollection) UpdateMany(ctx context.Context, filter interface{}, update interface{}) (*docdb.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.UpdateResult), args.Error(1)
}

// DeleteOne deletes a single document.
func (m *MockCollection) DeleteOne(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.DeleteResult), args.Error(1)
}

// DeleteMany deletes multiple documents.
func (m *MockCollection) DeleteMany(ctx context.Context, filter interface{}) (*docdb.DeleteResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.DeleteResult), args.Error(1)
}

// CountDocuments counts documents matching the filter.
func (m *MockCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Drop drops the collection.
func (m *MockCollection) Drop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDatabase is a mock implementation of docdb.Database.
type MockDatabase struct {
	mock.Mock
	DatabaseName string
}

// Name returns the database name.
func (m *MockDatabase) Name() string {
	return m.DatabaseName
}

// Collection returns a collection from the database.
func (m *MockDatabase) Collection(name string) docdb.Collection {
	args := m.Called(name)
	return args.Get(0).(docdb.Collection)
}

// ListCollectionNames lists all collection names.
func (m *MockDatabase) ListCollectionNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockDocDBClient is a mock implementation of docdb.Client whose
// collections all resolve to one MockCollection.
type MockDocDBClient struct {
	mock.Mock
	DB   *MockDatabase
	Coll *MockCollection
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		DB:   &MockDatabase{DatabaseName: "test"},
		Coll: &MockCollection{CollectionName: "test"},
	}
}

// Database returns the database.
func (m *MockDocDBClient) Database() docdb.Database {
	return m.DB
}

// Collection returns the shared mock collection.
func (m *MockDocDBClient) Collection(name string) docdb.Collection {
	return m.Coll
}

// Ping checks the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSingleResult is a mock implementation of docdb.SingleResult.
type MockSingleResult struct {
	mock.Mock
}

// Decode decodes the result.
func (m *MockSingleResult) Decode(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

// Err returns the result error.
func (m *MockSingleResult) Err() error {
	args := m.Called()
	return args.Error(0)
}

// MockCursor is a mock implementation of docdb.Cursor.
type MockCursor struct {
	mock.Mock
}

// Next advances the cursor.
func (m *MockCursor) Next(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// Decode decodes the current document.
func (m *MockCursor) Decode(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

// All decodes all documents.
func (m *MockCursor) All(ctx context.Context, results interface{}) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

// Err returns the cursor error.
func (m *MockCursor) Err() error {
	args := m.Called()
	return args.Error(0)
}

// Close closes the cursor.
func (m *MockCursor) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
