package reviews

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/iWorld-y/company_radar/app/research/pkg/model"
	"github.com/iWorld-y/company_radar/app/research/pkg/normalize"
)

const (
	minSamples = 3
	maxSamples = 4
	minDaysAgo = 30
	maxDaysAgo = 365
)

type template struct {
	role      string
	title     string
	pros      string
	cons      string
	minRating float64
	maxRating float64
}

func templates(name string) []template {
	return []template{
		{
			role:      "Senior Software Engineer",
			title:     "Excellent work environment and growth opportunities",
			pros:      fmt.Sprintf("Working at %s has been incredibly rewarding. The company culture promotes innovation and collaboration. Great benefits package and work-life balance. Management is supportive and provides clear growth paths.", name),
			cons:      "Sometimes the pace can be fast during busy periods. Remote work policies could be more flexible in some departments.",
			minRating: 4.0, maxRating: 4.8,
		},
		{
			role:      "Product Manager",
			title:     "Good company with room for improvement",
			pros:      fmt.Sprintf("%s offers competitive compensation and has a diverse, talented workforce. The projects are challenging and meaningful. Good learning opportunities through training programs.", name),
			cons:      "Communication between teams could be better. Some processes feel outdated and could benefit from modernization. Career advancement can be slow in certain areas.",
			minRating: 3.5, maxRating: 4.2,
		},
		{
			role:      "Marketing Specialist",
			title:     "Strong leadership and innovative culture",
			pros:      fmt.Sprintf("The leadership team at %s has a clear vision and communicates it well. Employees are encouraged to think creatively and take ownership of their work. Excellent mentorship programs.", name),
			cons:      "Workload can be heavy during project deadlines. Office space could be improved in some locations. Limited remote work options pre-pandemic.",
			minRating: 3.8, maxRating: 4.5,
		},
		{
			role:      "Business Analyst",
			title:     "Great place to build your career",
			pros:      fmt.Sprintf("%s invests heavily in employee development. The company promotes from within and offers excellent training programs. Collaborative environment with smart colleagues.", name),
			cons:      "Benefits package, while good, could be more comprehensive. Some legacy systems slow down productivity. Meeting schedules can be overwhelming.",
			minRating: 4.2, maxRating: 4.7,
		},
		{
			role:      "Operations Manager",
			title:     "Decent workplace with typical challenges",
			pros:      fmt.Sprintf("Stable employment with %s. Reasonable work-life balance in most departments. Good opportunity to work on large-scale projects with impact.", name),
			cons:      "Limited flexibility in work arrangements. Some management layers create communication barriers. Salary increases could be more competitive with market rates.",
			minRating: 3.2, maxRating: 3.9,
		},
	}
}

// Sampler 生成示例员工评价，随机源和时钟可注入
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSampler rng 或 now 为 nil 时使用默认值
func NewSampler(rng *rand.Rand, now func() time.Time) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if now == nil {
		now = time.Now
	}
	return &Sampler{rng: rng, now: now}
}

// Sample 从模板中不重复地抽取 3 到 4 条评价
func (s *Sampler) Sample(name string) []model.Review {
	pool := templates(normalize.CompanyName(name))
	today := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := minSamples + s.rng.IntN(maxSamples-minSamples+1)
	perm := s.rng.Perm(len(pool))

	out := make([]model.Review, 0, n)
	for _, idx := range perm[:n] {
		t := pool[idx]
		rating := t.minRating + s.rng.Float64()*(t.maxRating-t.minRating)
		days := minDaysAgo + s.rng.IntN(maxDaysAgo-minDaysAgo+1)
		out = append(out, model.Review{
			Rating: math.Round(rating*10) / 10,
			Title:  t.title,
			Pros:   t.pros,
			Cons:   t.cons,
			Role:   t.role,
			Date:   today.AddDate(0, 0, -days).Format(time.DateOnly),
		})
	}
	return out
}
