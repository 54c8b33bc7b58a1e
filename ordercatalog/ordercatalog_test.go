package ordercatalog

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/glue"
	"github.com/aws/aws-sdk-go/service/glue/glueiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGlue struct {
	glueiface.GlueAPI

	createDatabaseErr error
	createTableErr    error
	startCrawlerErr   error

	createdDatabases []*glue.DatabaseInput
	createdTables    []*glue.TableInput
	startedCrawlers  []string

	crawlerStates []string // consumed one per GetCrawler call
	lastCrawl     *glue.LastCrawlInfo
}

func (f *fakeGlue) CreateDatabaseWithContext(ctx aws.Context, input *glue.CreateDatabaseInput, opts ...request.Option) (*glue.CreateDatabaseOutput, error) {
	if f.createDatabaseErr != nil {
		return nil, f.createDatabaseErr
	}
	f.createdDatabases = append(f.createdDatabases, input.DatabaseInput)
	return &glue.CreateDatabaseOutput{}, nil
}

func (f *fakeGlue) CreateTableWithContext(ctx aws.Context, input *glue.CreateTableInput, opts ...request.Option) (*glue.CreateTableOutput, error) {
	if f.createTableErr != nil {
		return nil, f.createTableErr
	}
	f.createdTables = append(f.createdTables, input.TableInput)
	return &glue.CreateTableOutput{}, nil
}

func (f *fakeGlue) StartCrawlerWithContext(ctx aws.Context, input *glue.StartCrawlerInput, opts ...request.Option) (*glue.StartCrawlerOutput, error) {
	if f.startCrawlerErr != nil {
		return nil, f.startCrawlerErr
	}
	f.startedCrawlers = append(f.startedCrawlers, aws.StringValue(input.Name))
	return &glue.StartCrawlerOutput{}, nil
}

func (f *fakeGlue) GetCrawlerWithContext(ctx aws.Context, input *glue.GetCrawlerInput, opts ...request.Option) (*glue.GetCrawlerOutput, error) {
	state := f.crawlerStates[0]
	if len(f.crawlerStates) > 1 {
		f.crawlerStates = f.crawlerStates[1:]
	}
	return &glue.GetCrawlerOutput{
		Crawler: &glue.Crawler{
			Name:      input.Name,
			State:     aws.String(state),
			LastCrawl: f.lastCrawl,
		},
	}, nil
}

func newTestCatalog(fake *fakeGlue) *Catalog {
	c := New(fake)
	c.pollMin = time.Millisecond
	c.pollMax = time.Millisecond
	return c
}

func TestEnsureDatabase(t *testing.T) {
	fake := &fakeGlue{}
	c := New(fake)

	require.NoError(t, c.EnsureDatabase(context.Background(), "orderlake"))
	require.Len(t, fake.createdDatabases, 1)
	assert.Equal(t, "orderlake", aws.StringValue(fake.createdDatabases[0].Name))
}

func TestEnsureDatabaseAlreadyExists(t *testing.T) {
	fake := &fakeGlue{
		createDatabaseErr: awserr.New(glue.ErrCodeAlreadyExistsException, "already there", nil),
	}
	require.NoError(t, New(fake).EnsureDatabase(context.Background(), "orderlake"))
}

func TestEnsureOrdersTable(t *testing.T) {
	fake := &fakeGlue{}
	c := New(fake)

	err := c.EnsureOrdersTable(context.Background(), "orderlake", "filtered_orders", "s3://order-lake/processed/")
	require.NoError(t, err)
	require.Len(t, fake.createdTables, 1)

	table := fake.createdTables[0]
	assert.Equal(t, "filtered_orders", aws.StringValue(table.Name))
	assert.Equal(t, "1", aws.StringValue(table.Parameters["skip.header.line.count"]))
	require.NotNil(t, table.StorageDescriptor)
	assert.Equal(t, "s3://order-lake/processed/", aws.StringValue(table.StorageDescriptor.Location))
	assert.Len(t, table.StorageDescriptor.Columns, 5)
	assert.Equal(t, csvSerdeLibrary, aws.StringValue(table.StorageDescriptor.SerdeInfo.SerializationLibrary))
}

func TestEnsureOrdersTableAlreadyExists(t *testing.T) {
	fake := &fakeGlue{
		createTableErr: awserr.New(glue.ErrCodeAlreadyExistsException, "already there", nil),
	}
	err := New(fake).EnsureOrdersTable(context.Background(), "orderlake", "filtered_orders", "s3://order-lake/processed/")
	require.NoError(t, err)
}

func TestRunCrawler(t *testing.T) {
	fake := &fakeGlue{}
	require.NoError(t, New(fake).RunCrawler(context.Background(), "orderlake-crawler"))
	assert.Equal(t, []string{"orderlake-crawler"}, fake.startedCrawlers)
}

func TestRunCrawlerAlreadyRunning(t *testing.T) {
	fake := &fakeGlue{
		startCrawlerErr: awserr.New(glue.ErrCodeCrawlerRunningException, "busy", nil),
	}
	require.NoError(t, New(fake).RunCrawler(context.Background(), "orderlake-crawler"))
}

func TestWaitForCrawler(t *testing.T) {
	fake := &fakeGlue{crawlerStates: []string{glue.CrawlerStateRunning, glue.CrawlerStateStopping, glue.CrawlerStateReady}}
	require.NoError(t, newTestCatalog(fake).WaitForCrawler(context.Background(), "orderlake-crawler"))
}

func TestWaitForCrawlerLastCrawlFailed(t *testing.T) {
	fake := &fakeGlue{
		crawlerStates: []string{glue.CrawlerStateReady},
		lastCrawl: &glue.LastCrawlInfo{
			Status:       aws.String(glue.LastCrawlStatusFailed),
			ErrorMessage: aws.String("internal service exception"),
		},
	}
	err := newTestCatalog(fake).WaitForCrawler(context.Background(), "orderlake-crawler")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal service exception")
}

func TestWaitForCrawlerContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeGlue{crawlerStates: []string{glue.CrawlerStateRunning}}
	err := newTestCatalog(fake).WaitForCrawler(ctx, "orderlake-crawler")
	require.Error(t, err)
}
