package mapper_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"activitytracker/src/domain"
	"activitytracker/src/domain/entities"
	"activitytracker/src/repositories/mapper"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v2"
)

var _ = Describe("Row", func() {
	Context("CollectRows", func() {
		It("should key every value by its column alias", func() {
			// ARRANGE
			mock, err := pgxmock.NewPool()
			Expect(err).NotTo(HaveOccurred())
			defer mock.Close()

			mock.ExpectQuery("SELECT").WillReturnRows(
				pgxmock.NewRows([]string{mapper.UserID, mapper.UserUsername}).
					AddRow(int64(1), "ana").
					AddRow(int64(2), "bia"),
			)

			rows, err := mock.Query(context.Background(), "SELECT users")
			Expect(err).NotTo(HaveOccurred())

			// ACT
			collected, err := mapper.CollectRows(rows)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(collected).To(Equal([]mapper.Row{
				{mapper.UserID: int64(1), mapper.UserUsername: "ana"},
				{mapper.UserID: int64(2), mapper.UserUsername: "bia"},
			}))
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})
	})

	Context("ID", func() {
		It("should return Unassigned for NULL", func() {
			id, err := mapper.Row{mapper.ActivityID: nil}.ID(mapper.ActivityID)

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(entities.Unassigned))
			Expect(id.IsAssigned()).To(BeFalse())
		})

		It("should accept the narrower integer types", func() {
			id, err := mapper.Row{mapper.ActivityID: int32(7)}.ID(mapper.ActivityID)

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(entities.ID(7)))
		})

		It("should fail with ErrDecoding when the column is missing", func() {
			_, err := mapper.Row{}.ID(mapper.ActivityID)

			Expect(err).To(MatchError(domain.ErrDecoding))
		})

		It("should fail with ErrDecoding for a non numeric value", func() {
			_, err := mapper.Row{mapper.ActivityID: "seven"}.ID(mapper.ActivityID)

			Expect(err).To(MatchError(domain.ErrDecoding))
		})
	})

	Context("Duration", func() {
		It("should read BIGINT as seconds", func() {
			d, err := mapper.Row{mapper.ActivityDuration: int64(90)}.Duration(mapper.ActivityDuration)

			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(90 * time.Second))
		})

		It("should read an interval without months", func() {
			interval := pgtype.Interval{Days: 1, Microseconds: int64(time.Hour / time.Microsecond), Valid: true}

			d, err := mapper.Row{mapper.ActivityDuration: interval}.Duration(mapper.ActivityDuration)

			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(25 * time.Hour))
		})

		It("should reject an interval with months", func() {
			interval := pgtype.Interval{Months: 1, Valid: true}

			_, err := mapper.Row{mapper.ActivityDuration: interval}.Duration(mapper.ActivityDuration)

			Expect(err).To(MatchError(domain.ErrDecoding))
		})
	})

	Context("NullableString", func() {
		It("should tell NULL apart from empty text", func() {
			row := mapper.Row{"a": nil, "b": ""}

			a, err := row.NullableString("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(BeNil())

			b, err := row.NullableString("b")
			Expect(err).NotTo(HaveOccurred())
			Expect(b).NotTo(BeNil())
			Expect(*b).To(BeEmpty())
		})
	})
})
