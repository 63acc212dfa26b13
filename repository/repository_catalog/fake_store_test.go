package repository_catalog

import (
	"context"
	"errors"
	"io"

	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/mongo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 测试用内存存储桩。只实现被测路径用到的方法，
// 其余方法落到内嵌接口上，误用会panic暴露问题

type fakeCursor struct {
	items []domain_catalog.Anime
	raw   []bson.M
	pos   int
}

func (c *fakeCursor) Close(ctx context.Context) error { return nil }

func (c *fakeCursor) Next(ctx context.Context) bool {
	c.pos++
	return c.pos <= len(c.raw)
}

func (c *fakeCursor) Decode(v interface{}) error {
	if m, ok := v.(*bson.M); ok {
		*m = c.raw[c.pos-1]
		return nil
	}
	return errors.New("fakeCursor: unsupported decode target")
}

func (c *fakeCursor) All(ctx context.Context, result interface{}) error {
	if out, ok := result.(*[]domain_catalog.Anime); ok {
		*out = append([]domain_catalog.Anime{}, c.items...)
		return nil
	}
	return errors.New("fakeCursor: unsupported decode target")
}

type fakeSingleResult struct {
	item *domain_catalog.Anime
	err  error
}

func (r *fakeSingleResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	if out, ok := v.(*domain_catalog.Anime); ok {
		*out = *r.item
		return nil
	}
	return errors.New("fakeSingleResult: unsupported decode target")
}

type fakeCollection struct {
	mongo.Collection

	findFunc    func(filter interface{}) (mongo.Cursor, error)
	findCalls   int
	findFilters []interface{}

	findOneFunc func(filter interface{}) mongo.SingleResult
}

func (c *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (mongo.Cursor, error) {
	c.findCalls++
	c.findFilters = append(c.findFilters, filter)
	return c.findFunc(filter)
}

func (c *fakeCollection) FindOne(ctx context.Context, filter interface{}) mongo.SingleResult {
	return c.findOneFunc(filter)
}

type fakeDatabase struct {
	mongo.Database
	coll *fakeCollection
}

func (d *fakeDatabase) Collection(string) mongo.Collection { return d.coll }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func animeFixture(id, title string) domain_catalog.Anime {
	return domain_catalog.Anime{ID: id, Title: title}
}
