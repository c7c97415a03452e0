package propagate

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/logging"
)

// Reconciler brings the protections on a target sheet in line with a protection descriptor from
// the template. Existing protections are treated as replaceable state: editors are never merged
// into an existing protection, the protection is replaced.
//
// Actor is the account running the update and Admins the configured administrators. Both are
// always included in the editor list written to the host so that the update cannot lock them out.
type Reconciler struct {
	Actor  string
	Admins []string
}

// Reconcile applies the protection to the sheet. Only the protection's scope (whole sheet or
// region coordinates) and editors are used; the sheet name in the descriptor is ignored.
func (r *Reconciler) Reconcile(ctx context.Context, doc Document, sheet Sheet, p Protection) error {
	if p.IsSheet() {
		return r.reconcileSheet(ctx, doc, sheet, p)
	}

	return r.reconcileRegion(ctx, doc, sheet, p)
}

// reconcileSheet removes any existing whole-sheet protection and recreates it unless the desired
// editor list is empty, in which case the sheet is left unprotected.
func (r *Reconciler) reconcileSheet(ctx context.Context, doc Document, sheet Sheet, p Protection) error {
	log := logging.Get("protect")

	existing, err := doc.Protections(ctx, sheet)
	if err != nil {
		return err
	}

	for _, q := range existing {
		if q.IsSheet() {
			if err := doc.Unprotect(ctx, q); err != nil {
				return fmt.Errorf("error removing sheet protection from '%v' (%w)", sheet.Title, err)
			}
		}
	}

	if len(normalise(p.Editors)) == 0 {
		log.Debug().Str("document", doc.Title()).Str("sheet", sheet.Title).Msg("sheet unprotected")
		return nil
	}

	protection := Protection{
		Sheet:       sheet.Title,
		Editors:     r.editors(p.Editors),
		Description: p.Description,
	}

	if err := doc.Protect(ctx, sheet, protection); err != nil {
		return fmt.Errorf("error protecting sheet '%v' (%w)", sheet.Title, err)
	}

	log.Debug().Str("document", doc.Title()).Str("sheet", sheet.Title).Strs("editors", protection.Editors).Msg("sheet protected")

	return nil
}

// reconcileRegion replaces the protection with exactly the same geometry as the descriptor if its
// editors differ, creates one if there is none and leaves it alone if the editors already match.
func (r *Reconciler) reconcileRegion(ctx context.Context, doc Document, sheet Sheet, p Protection) error {
	log := logging.Get("protect")
	region := *p.Region
	region.Sheet = sheet.Title

	existing, err := doc.Protections(ctx, sheet)
	if err != nil {
		return err
	}

	desired := normalise(p.Editors)
	editors := r.editors(p.Editors)

	var match *Protection
	for i := range existing {
		q := existing[i]
		if !q.IsSheet() && q.Region.SameGeometry(region) {
			match = &q
			break
		}
	}

	if match != nil {
		if len(desired) > 0 && slices.Equal(normalise(match.Editors), editors) {
			log.Debug().Str("document", doc.Title()).Str("range", region.A1()).Msg("range protection unchanged")
			return nil
		}

		if err := doc.Unprotect(ctx, *match); err != nil {
			return fmt.Errorf("error removing protection from %v (%w)", region.A1(), err)
		}
	}

	if len(desired) == 0 {
		log.Debug().Str("document", doc.Title()).Str("range", region.A1()).Msg("range unprotected")
		return nil
	}

	protection := Protection{
		Sheet:       sheet.Title,
		Region:      &region,
		Editors:     editors,
		Description: p.Description,
	}

	if err := doc.Protect(ctx, sheet, protection); err != nil {
		return fmt.Errorf("error protecting %v (%w)", region.A1(), err)
	}

	log.Debug().Str("document", doc.Title()).Str("range", region.A1()).Strs("editors", editors).Msg("range protected")

	return nil
}

// editors returns the effective editor list: actor, admins and the desired editors.
func (r *Reconciler) editors(desired []string) []string {
	list := []string{}
	if r.Actor != "" {
		list = append(list, r.Actor)
	}

	list = append(list, r.Admins...)
	list = append(list, desired...)

	return normalise(list)
}

// normalise lower-cases, trims, deduplicates and sorts a list of e-mail addresses so that editor
// lists can be compared irrespective of order.
func normalise(emails []string) []string {
	list := []string{}
	for _, e := range emails {
		if v := strings.ToLower(strings.TrimSpace(e)); v != "" {
			list = append(list, v)
		}
	}

	slices.Sort(list)

	return slices.Compact(list)
}
