package sources

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// IowaHTMLSource scrapes the Iowa Lottery results pages. The winning numbers
// sit in labelled spans (lblLAN1..lblLAN5 plus a power label); the page does
// not always render the draw date, in which case the most recent scheduled
// weekday is used.
type IowaHTMLSource struct {
	cfg    config.SourceConfig
	game   config.GameConfig
	client Getter
	now    func() time.Time
}

// NewIowaHTMLSource creates the Iowa scraper for one game.
func NewIowaHTMLSource(cfg config.SourceConfig, game config.GameConfig, client Getter) *IowaHTMLSource {
	return &IowaHTMLSource{cfg: cfg, game: game, client: client, now: time.Now}
}

func (s *IowaHTMLSource) Name() string { return "Iowa" }

var htmlDateRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)

func (s *IowaHTMLSource) Fetch(ctx context.Context) ([]models.Draw, error) {
	raw, err := s.client.Get(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	page := string(raw)

	main := make([]int, 0, 5)
	for i := 1; i <= 5; i++ {
		re := regexp.MustCompile(regexp.QuoteMeta(s.cfg.LabelPrefix) + strconv.Itoa(i) + `["'][^>]*>(\d+)<`)
		m := re.FindStringSubmatch(page)
		if m == nil {
			break
		}
		n, _ := strconv.Atoi(m[1])
		main = append(main, n)
	}

	powerRe := regexp.MustCompile(regexp.QuoteMeta(s.cfg.PowerLabel) + `["'][^>]*>(\d+)<`)
	pm := powerRe.FindStringSubmatch(page)

	if len(main) != 5 || pm == nil {
		return nil, fmt.Errorf("%w: number labels %s*/%s not found", ErrSourceFormatChanged, s.cfg.LabelPrefix, s.cfg.PowerLabel)
	}
	bonus, _ := strconv.Atoi(pm[1])
	sort.Ints(main)

	date := lastScheduledDate(s.game, s.now())
	if dm := htmlDateRe.FindStringSubmatch(page); dm != nil {
		month, _ := strconv.Atoi(dm[1])
		day, _ := strconv.Atoi(dm[2])
		date = fmt.Sprintf("%s-%02d-%02d", dm[3], month, day)
	}

	return []models.Draw{{Date: date, Main: main, Bonus: bonus}}, nil
}

// LottoNetSource scrapes lotto.net results pages, which render the latest
// draw as a block of ball elements. Used as a fallback where no structured
// feed exists.
type LottoNetSource struct {
	cfg    config.SourceConfig
	game   config.GameConfig
	client Getter
	now    func() time.Time
}

// NewLottoNetSource creates the lotto.net scraper for one game.
func NewLottoNetSource(cfg config.SourceConfig, game config.GameConfig, client Getter) *LottoNetSource {
	return &LottoNetSource{cfg: cfg, game: game, client: client, now: time.Now}
}

func (s *LottoNetSource) Name() string { return "lotto.net" }

var (
	ballsBlockRe = regexp.MustCompile(`(?s)class="balls[^"]*"[^>]*>(.*?)</div>`)
	ballNumRe    = regexp.MustCompile(`>(\d{1,2})<`)
	lottoNetDate = regexp.MustCompile(`(\w+day)\s+(\d{1,2})\w*\s+(\w+)\s+(\d{4})`)
)

var monthNumbers = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

func (s *LottoNetSource) Fetch(ctx context.Context) ([]models.Draw, error) {
	raw, err := s.client.Get(ctx, s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	page := string(raw)

	block := ballsBlockRe.FindStringSubmatch(page)
	if block == nil {
		return nil, fmt.Errorf("%w: balls block not found", ErrSourceFormatChanged)
	}
	nums := ballNumRe.FindAllStringSubmatch(block[1], -1)
	if len(nums) < 6 {
		return nil, fmt.Errorf("%w: found %d numbers, need 6", ErrSourceFormatChanged, len(nums))
	}

	main := make([]int, 5)
	for i := 0; i < 5; i++ {
		main[i], _ = strconv.Atoi(nums[i][1])
	}
	sort.Ints(main)
	bonus, _ := strconv.Atoi(nums[5][1])

	date := lastScheduledDate(s.game, s.now())
	if dm := lottoNetDate.FindStringSubmatch(page); dm != nil {
		if month, ok := monthNumbers[dm[3]]; ok {
			day, _ := strconv.Atoi(dm[2])
			date = fmt.Sprintf("%s-%02d-%02d", dm[4], month, day)
		}
	}

	return []models.Draw{{Date: date, Main: main, Bonus: bonus}}, nil
}
