package sites_test

import (
	"context"
	"testing"

	"velowatch/internal/sites"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xbikersPage = `
<table>
<tr valign="middle">
  <td class="bfb">27.08</td>
  <td><a class="gb" href="https://x-bikers.com/board/view.php?id=777">Продам MTB</a></td>
  <td class="bfb">Киев</td>
  <td class="bfb">15 000 грн</td>
</tr>
<tr valign="middle">
  <td class="bfb">27.08</td>
  <td><a class="gb" href="https://x-bikers.com/board/view.php?id=778">Покрышки</a></td>
</tr>
</table>`

func TestXBikersListings(t *testing.T) {
	x := sites.NewXBikers()

	listings := x.Listings(doc(t, xbikersPage))

	// второй ряд без третьей ценовой ячейки пропущен
	require.Len(t, listings, 1)

	assert.Equal(t, "xbikers", listings[0].Source)
	assert.Equal(t, "777", listings[0].ID)
	assert.Equal(t, "продам mtb", listings[0].Title)
	assert.Equal(t, "15 000", listings[0].Price)
	assert.Equal(t, "https://x-bikers.com/board/view.php?id=777", listings[0].Link)
}

func TestXBikersListings_LinkWithoutID(t *testing.T) {
	const page = `
<table>
<tr valign="middle">
  <td class="bfb">1</td>
  <td><a class="gb" href="https://x-bikers.com/board/">Без идентификатора</a></td>
  <td class="bfb">2</td>
  <td class="bfb">100 грн</td>
</tr>
</table>`

	x := sites.NewXBikers()
	assert.Empty(t, x.Listings(doc(t, page)))
}

func TestXBikersPageCount(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "last page link",
			html: `<ul><li class="last"><a href="index.php?&page=14">последняя</a></li></ul>`,
			want: 14,
		},
		{
			name: "no pagination",
			html: `<div></div>`,
			want: 1,
		},
		{
			name: "malformed page number",
			html: `<li class="last"><a href="index.php?&page=next"></a></li>`,
			want: 1,
		},
	}

	x := sites.NewXBikers()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x.PageCount(doc(t, tt.html)))
		})
	}
}

func TestXBikersSections(t *testing.T) {
	x := sites.NewXBikers()

	sections, err := x.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{""}, sections)

	assert.Equal(t, "https://x-bikers.com/board/", x.SectionURL(""))
	assert.Equal(t, "https://x-bikers.com/board/index.php?&page=3", x.PageURL("", 3))
}

func TestNewAdapter(t *testing.T) {
	for _, name := range []string{"olx", "xt", "xbikers"} {
		adapter, err := sites.New(name, &fakeFetcher{})
		require.NoError(t, err)
		assert.Equal(t, name, adapter.Source())
	}

	_, err := sites.New("ebay", &fakeFetcher{})
	assert.ErrorIs(t, err, sites.ErrUnknownSource)
}
