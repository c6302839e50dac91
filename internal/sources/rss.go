package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// CTRSSSource reads the CT Lottery combined RSS feed. One feed carries every
// CT game, so the adapter filters items by a configured title keyword and
// extracts the "NN-NN-NN-NN-NN XX-NN" number block from the description.
type CTRSSSource struct {
	cfg    config.SourceConfig
	client Getter
	now    func() time.Time
}

// NewCTRSSSource creates the RSS adapter for one game's feed config.
func NewCTRSSSource(cfg config.SourceConfig, client Getter) *CTRSSSource {
	return &CTRSSSource{cfg: cfg, client: client, now: time.Now}
}

func (s *CTRSSSource) Name() string { return "CT_RSS" }

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
}

var rssDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

func (s *CTRSSSource) Fetch(ctx context.Context) ([]models.Draw, error) {
	raw, err := s.client.Get(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("%w: rss decode: %v", ErrSourceFormatChanged, err)
	}

	numbersRe := regexp.MustCompile(
		`(\d{1,2})-(\d{1,2})-(\d{1,2})-(\d{1,2})-(\d{1,2})\s+` +
			regexp.QuoteMeta(s.cfg.BonusLabel) + `-(\d{1,2})`)

	keyword := strings.ToLower(s.cfg.Keyword)
	var draws []models.Draw
	for _, item := range feed.Channel.Items {
		title := strings.ToLower(item.Title)
		if !strings.Contains(title, keyword) {
			continue
		}
		// the feed also lists "Double Play" variants under the same name
		if strings.Contains(title, "double") {
			continue
		}

		m := numbersRe.FindStringSubmatch(item.Description)
		if m == nil {
			continue
		}
		main := make([]int, 5)
		for i := 0; i < 5; i++ {
			main[i], _ = strconv.Atoi(m[i+1])
		}
		sort.Ints(main)
		bonus, _ := strconv.Atoi(m[6])

		date := s.now().Format(models.DateLayout)
		if dm := rssDateRe.FindStringSubmatch(item.Title); dm != nil {
			month, _ := strconv.Atoi(dm[1])
			day, _ := strconv.Atoi(dm[2])
			date = fmt.Sprintf("%s-%02d-%02d", dm[3], month, day)
		}

		draws = append(draws, models.Draw{Date: date, Main: main, Bonus: bonus})
	}

	if len(draws) == 0 {
		return nil, fmt.Errorf("%w: no %q item with a number block", ErrSourceFormatChanged, s.cfg.Keyword)
	}
	return draws, nil
}
