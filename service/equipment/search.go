package equipment

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	equipmentEntity "sportloan.GO/model/entity/equipment"
	equipmentRepo "sportloan.GO/model/repository/equipment"
)

const searchIndex = "equipment_items"

// Searcher answers equipment searches. When ELASTICSEARCH_URL is set it
// queries the index and resolves hits back through the ledger; otherwise it
// falls back to SQL LIKE filtering, which is all the counter UI needs.
type Searcher struct {
	items  *equipmentRepo.EquipmentRepository
	client *elasticsearch.Client
}

func NewSearcher(items *equipmentRepo.EquipmentRepository) *Searcher {
	s := &Searcher{items: items}
	url := os.Getenv("ELASTICSEARCH_URL")
	if url == "" {
		return s
	}
	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTICSEARCH_USER"),
		Password:  os.Getenv("ELASTICSEARCH_PASS"),
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		// Misconfigured ES must not take item search down with it.
		return s
	}
	s.client = client
	return s
}

func (s *Searcher) Search(term string, typeID uint) ([]equipmentEntity.Item, error) {
	if s.client == nil || term == "" {
		return s.items.Search(term, typeID)
	}
	ids, err := s.searchIDs(term)
	if err != nil {
		// Degrade to SQL rather than failing the request.
		return s.items.Search(term, typeID)
	}
	var out []equipmentEntity.Item
	for _, id := range ids {
		item, err := s.items.Get(id)
		if err != nil {
			continue
		}
		if typeID != 0 && item.TypeID != typeID {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *Searcher) searchIDs(term string) ([]uint, error) {
	query := fmt.Sprintf(`{
		"query": {
			"multi_match": {
				"query": %q,
				"fields": ["name^2", "catalog_number", "detail"]
			}
		},
		"_source": false,
		"size": 50
	}`, term)

	res, err := s.client.Search(
		s.client.Search.WithIndex(searchIndex),
		s.client.Search.WithBody(strings.NewReader(query)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var body struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(body.Hits.Hits))
	for _, h := range body.Hits.Hits {
		var id uint
		if _, err := fmt.Sscanf(h.ID, "%d", &id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
