package clients

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Sameer-09816/api/internal/domain"
)

const (
	selectorWrapper      = "div.download__wrapper"
	selectorItem         = "div.download_item"
	selectorProfile      = "div.download__item__profile_pic"
	selectorCaption      = "div.download__item__caption__text"
	selectorDownloadLink = "a.btn.download__item__info__actions__button"
)

// ParseDownloadPage extracts the thread metadata and media links from a
// threadster download page. It returns domain.ErrNotFound when the page
// carries no downloadable content.
func ParseDownloadPage(body io.Reader) (*domain.Thread, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	wrapper := doc.Find(selectorWrapper)
	if wrapper.Length() == 0 {
		return nil, domain.ErrNotFound
	}

	items := wrapper.Find(selectorItem)
	if items.Length() == 0 {
		return nil, domain.ErrNotFound
	}

	thread := &domain.Thread{}
	fillAuthor(thread, items.First())

	items.Each(func(_ int, item *goquery.Selection) {
		if href, ok := item.Find(selectorDownloadLink).Attr("href"); ok {
			thread.URLs = append(thread.URLs, href)
		}
	})
	if len(thread.URLs) == 0 {
		return nil, domain.ErrNotFound
	}

	return thread, nil
}

func fillAuthor(thread *domain.Thread, item *goquery.Selection) {
	profile := item.Find(selectorProfile)
	if avatar, ok := profile.Find("img").Attr("src"); ok {
		thread.Avatar = avatar
	}
	thread.Username = strings.TrimSpace(profile.Find("span").First().Text())
	thread.Caption = strings.TrimSpace(item.Find(selectorCaption).First().Text())
}
