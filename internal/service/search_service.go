package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"viewtube/internal/api/dto"
	infraES "viewtube/internal/infra/elasticsearch"
	"viewtube/internal/model"
	"viewtube/internal/query"
	"viewtube/pkg/logger"

	"go.uber.org/zap"
)

const maxUserResults = 20

type SearchService struct {
	videoRepo VideoRepo
	userRepo  UserRepo
}

func NewSearchService(videoRepo VideoRepo, userRepo UserRepo) *SearchService {
	return &SearchService{videoRepo: videoRepo, userRepo: userRepo}
}

// Search runs full-text search over published videos and users. Videos
// go through Elasticsearch when it is up and degrade to a database scan
// when it is not; users always come from the database.
func (s *SearchService) Search(ctx context.Context, q string, page, limit int) (*dto.SearchData, error) {
	q = strings.TrimSpace(q)
	if page < 1 {
		page = query.DefaultPage
	}
	if limit < 1 || limit > query.MaxLimit {
		limit = query.DefaultLimit
	}

	data := &dto.SearchData{Videos: []dto.VideoInfo{}, Users: []dto.UserInfo{}}
	if q == "" {
		return data, nil
	}

	videos, total, err := s.searchVideosES(ctx, q, page, limit)
	if err != nil {
		logger.Warn("Elasticsearch search failed, falling back to database", zap.Error(err))
		videos, total, err = s.searchVideosDB(q, page, limit)
		if err != nil {
			return nil, err
		}
	}
	data.Videos = videos
	data.Total = total

	users, err := s.userRepo.SearchByName(q, maxUserResults)
	if err != nil {
		return nil, err
	}
	for i := range users {
		data.Users = append(data.Users, *toUserInfo(&users[i]))
	}

	return data, nil
}

// Suggest returns title completions for a prefix. Only available while
// Elasticsearch is up; without it the suggestion list is empty.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) (*dto.SuggestData, error) {
	prefix = strings.TrimSpace(prefix)
	if limit < 1 || limit > 20 {
		limit = 10
	}

	data := &dto.SuggestData{Suggestions: []string{}}
	if prefix == "" || infraES.Get() == nil {
		return data, nil
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"match_phrase_prefix": map[string]interface{}{
							"title": prefix,
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_published": true}},
				},
			},
		},
		"_source": []string{"title"},
		"size":    limit,
	}

	raw, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := infraES.Search(searchCtx, infraES.VideoIndexName, bytes.NewReader(raw))
	if err != nil {
		logger.Warn("Elasticsearch suggest failed", zap.Error(err))
		return data, nil
	}
	defer resp.Body.Close()

	if resp.IsError() {
		logger.Warn("Elasticsearch suggest error", zap.String("response", resp.String()))
		return data, nil
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Title string `json:"title"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, h := range esResp.Hits.Hits {
		if !seen[h.Source.Title] {
			seen[h.Source.Title] = true
			data.Suggestions = append(data.Suggestions, h.Source.Title)
		}
	}
	return data, nil
}

func (s *SearchService) searchVideosES(ctx context.Context, q string, page, limit int) ([]dto.VideoInfo, int64, error) {
	if infraES.Get() == nil {
		return nil, 0, fmt.Errorf("elasticsearch client not initialized")
	}

	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":     q,
							"fields":    []string{"title^3", "description", "owner_name^2"},
							"type":      "best_fields",
							"operator":  "or",
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"is_published": true}},
				},
			},
		},
		"_source": []string{"id"},
		"from":    (page - 1) * limit,
		"size":    limit,
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]string{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]string{"order": "desc"}},
		},
	}

	raw, err := json.Marshal(esQuery)
	if err != nil {
		return nil, 0, err
	}

	searchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(searchCtx, infraES.VideoIndexName, bytes.NewReader(raw))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}

	total := esResp.Hits.Total.Value
	if len(ids) == 0 {
		return []dto.VideoInfo{}, total, nil
	}

	videos, err := s.videoRepo.GetByIDsWithOwner(ids)
	if err != nil {
		return nil, 0, err
	}

	// Preserve relevance order from the index.
	byID := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}
	ordered := make([]dto.VideoInfo, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, toVideoInfo(v))
		}
	}
	return ordered, total, nil
}

func (s *SearchService) searchVideosDB(q string, page, limit int) ([]dto.VideoInfo, int64, error) {
	p, err := query.Build(query.RawListParams{
		Page:  fmt.Sprintf("%d", page),
		Limit: fmt.Sprintf("%d", limit),
		Query: q,
	}, query.Videos)
	if err != nil {
		return nil, 0, err
	}

	videos, total, err := s.videoRepo.List(p, true)
	if err != nil {
		return nil, 0, err
	}
	return toVideoInfos(videos), total, nil
}
