package repository_catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/nsvip/anidex-backend/domain"
	"github.com/nsvip/anidex-backend/domain/domain_catalog"
	"github.com/nsvip/anidex-backend/mongo"
	driver "go.mongodb.org/mongo-driver/mongo"
)

var errMissingIndex = driver.CommandError{Code: 291, Message: "No query execution plans"}

// 存储永远报缺索引：原查询+一次降级，恰好两次调用后上抛，绝无更多重试
func TestExecute_MissingIndexRetriesExactlyOnce(t *testing.T) {
	coll := &fakeCollection{
		findFunc: func(filter interface{}) (mongo.Cursor, error) {
			return nil, errMissingIndex
		},
	}
	exec := NewFallbackExecutor(&fakeDatabase{coll: coll}, "catalog_anime", quietLogger())

	filter := domain_catalog.QueryFilter{Genre: "Action", Year: 2020, Count: 20}
	query, err := BuildCatalogQuery(filter)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	_, err = exec.Execute(context.Background(), filter, query)
	if err == nil {
		t.Fatal("expected error")
	}
	if coll.findCalls != 2 {
		t.Errorf("store calls = %d, want exactly 2 (original + one fallback)", coll.findCalls)
	}

	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) || storeErr.Kind != domain.ErrKindMissingIndex {
		t.Fatalf("expected MissingIndex classification, got %v", err)
	}
}

// 降级成功时补齐客户端侧过滤，只返回满足全部谓词的文档
func TestExecute_FallbackAppliesResidualFilter(t *testing.T) {
	matching := domain_catalog.Anime{ID: "a", Title: "A", Genres: []string{"Action"}, Year: 2020}
	offYear := domain_catalog.Anime{ID: "b", Title: "B", Genres: []string{"Action"}, Year: 1999}

	calls := 0
	coll := &fakeCollection{
		findFunc: func(filter interface{}) (mongo.Cursor, error) {
			calls++
			if calls == 1 {
				return nil, errMissingIndex
			}
			// 降级查询只按genre过滤，年份不匹配的文档也会回来
			return &fakeCursor{items: []domain_catalog.Anime{matching, offYear}}, nil
		},
	}
	exec := NewFallbackExecutor(&fakeDatabase{coll: coll}, "catalog_anime", quietLogger())

	filter := domain_catalog.QueryFilter{Genre: "Action", Year: 2020, Count: 20}
	query, _ := BuildCatalogQuery(filter)

	items, err := exec.Execute(context.Background(), filter, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Errorf("residual filtering failed, got %v", items)
	}
}

// 降级也失败时上抛最初的错误，降级的失败不能顶替原始诊断
func TestExecute_FallbackFailureSurfacesOriginalError(t *testing.T) {
	fallbackErr := errors.New("fallback exploded differently")
	calls := 0
	coll := &fakeCollection{
		findFunc: func(filter interface{}) (mongo.Cursor, error) {
			calls++
			if calls == 1 {
				return nil, errMissingIndex
			}
			return nil, fallbackErr
		},
	}
	exec := NewFallbackExecutor(&fakeDatabase{coll: coll}, "catalog_anime", quietLogger())

	filter := domain_catalog.QueryFilter{Genre: "Action", Count: 20}
	query, _ := BuildCatalogQuery(filter)

	_, err := exec.Execute(context.Background(), filter, query)
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if storeErr.Kind != domain.ErrKindMissingIndex {
		t.Errorf("kind = %s, want original MissingIndex", storeErr.Kind)
	}
	if errors.Is(err, fallbackErr) {
		t.Error("fallback failure masked the original error")
	}
}

// 非缺索引的存储错误不得触发降级，一次调用立即分类上抛
func TestExecute_OtherErrorsPropagateImmediately(t *testing.T) {
	coll := &fakeCollection{
		findFunc: func(filter interface{}) (mongo.Cursor, error) {
			return nil, driver.CommandError{Code: 13, Message: "not authorized on anidex"}
		},
	}
	exec := NewFallbackExecutor(&fakeDatabase{coll: coll}, "catalog_anime", quietLogger())

	filter := domain_catalog.QueryFilter{Genre: "Action", Count: 20}
	query, _ := BuildCatalogQuery(filter)

	_, err := exec.Execute(context.Background(), filter, query)
	if coll.findCalls != 1 {
		t.Errorf("store calls = %d, want 1 (no fallback for non-index errors)", coll.findCalls)
	}
	var storeErr *domain.StoreError
	if !errors.As(err, &storeErr) || storeErr.Kind != domain.ErrKindPermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
}

func TestExecute_SuccessPassthrough(t *testing.T) {
	want := []domain_catalog.Anime{animeFixture("naruto", "Naruto")}
	coll := &fakeCollection{
		findFunc: func(filter interface{}) (mongo.Cursor, error) {
			return &fakeCursor{items: want}, nil
		},
	}
	exec := NewFallbackExecutor(&fakeDatabase{coll: coll}, "catalog_anime", quietLogger())

	filter := domain_catalog.QueryFilter{Count: 20}
	query, _ := BuildCatalogQuery(filter)

	items, err := exec.Execute(context.Background(), filter, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "naruto" {
		t.Errorf("got %v", items)
	}
	if coll.findCalls != 1 {
		t.Errorf("store calls = %d, want 1", coll.findCalls)
	}
}
